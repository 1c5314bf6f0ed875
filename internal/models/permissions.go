package models

// Permission constants. Tokens are issued by the storefront auth service;
// this service only verifies them.
const (
	// Shipping policy permissions
	PermissionShippingPolicyRead   = "shipping:policy:read"
	PermissionShippingPolicyReload = "shipping:policy:reload"
)
