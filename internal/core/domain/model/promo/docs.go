// Package promo provides PromoCode: discount validation, which is pure and repeatable, and
// consumption, which must run under the code's lock when an order is confirmed.
package promo
