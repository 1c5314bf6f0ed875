/*
Package shipping computes per-store shipping fees for the storefront checkout.

A quote is computed against a policy Table: a validated, immutable snapshot of
the origin warehouse, the serviceable cities (with aliases and postal-code
overrides) and the pricing of every shipping method. Computation is pure
arithmetic over the table, so a checkout may request one quote per store in
parallel without coordination.

Usage:

	// Build the table once at startup
	table, err := shipping.LoadTable(ctx, loader)

	// Serve quotes
	svc := shipping.NewService(shipping.NewHolder(table), loader, cache, stats, shipping.ServiceConfig{})
	quote, err := svc.Quote(ctx, models.Destination{City: "Jakarta"}, "regular")

Quote algorithm:

  - the destination resolves to a postal-code override, else the city point,
    else it is unresolved (available=false, no distance)
  - a city that restricts its methods and does not list the requested one is
    treated like an unresolved destination
  - the haversine distance from the origin is rounded to 0.1 km
  - a distance above the method's cap is out of range (available=false, the
    distance is still reported); fees are never clamped
  - fee = round(max(min_fee, base_fee + per_km_rate * distance_km))

Error Handling:

Validation failures are returned as *errors.DomainError:
  - MISSING_FIELD: city or shipping method is blank
  - INVALID_METHOD: the method is not defined by the table
  - INVALID_POLICY: a table was rejected by NewTable

Unavailability is never an error; it is reported on the FeeQuote.

Reload:

Holder keeps the active table behind an atomic pointer. Reload reads the
configured PolicyLoader, validates the result and swaps it in whole, so a
call observes either the old table or the new one.
*/
package shipping
