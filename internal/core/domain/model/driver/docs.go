// Package driver implements the Driver aggregate: the driver profile, the
// delivered counter and the per-product inventory the driver carries.
//
// Inventory quantities never go negative. Withdrawals clamp at zero and
// report the uncovered shortfall to the caller instead of failing.
package driver
