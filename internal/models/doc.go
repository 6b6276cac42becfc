// Package models defines the core domain models for a shared household ("mess").
//
// # Ledgers
//
// Three independent event streams are recorded per mess:
//   - MealEntry: meal units one member consumed on one date. At most one entry exists
//     per (mess, user, date); a later write with the same key replaces the earlier one.
//   - DepositEntry: cash a member contributed. Append-only, duplicates are legitimate.
//   - CostEntry: shared grocery spending, attributed to the shopper for provenance only.
//
// # Settlement
//
// Settlement is computed on demand from a slice of the three ledgers and is never
// persisted. All money and meal-unit quantities are decimal.Decimal values kept at full
// precision until they are handed back to a caller.
//
// # Identity
//
// Users are identified by opaque ID strings issued by an external identity provider.
// A user belongs to at most one mess at a time; MessContext carries that association
// explicitly into every call that needs it.
package models
