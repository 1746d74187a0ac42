// Package order provides the Order aggregate and its status machine.
//
// The package includes:
//   - Order: the aggregate root owning status, payment status, priced lines and history
//   - Status: the fulfilment state machine with its fixed transition table
//   - PaymentStatus / PaymentMethod: the money side of an order
//   - Totals: derived price figures with the total invariant
//   - Events: StatusChanged, RefundDue, CashbackEarned, LoyaltyPointsEarned, Placed
//
// Key business rules:
//   - Orders start Pending; Delivered, Cancelled and Refunded are terminal
//   - Cancelling a captured order raises a refund of the captured amount
//   - Delivering an order raises cashback and loyalty points per the store's RewardPolicy
//   - Refunded is reachable from Delivered only through Order.Refund
//   - Status history is append-only
package order
