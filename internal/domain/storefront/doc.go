// Package storefront contains the add-to-cart domain shared by the ARI
// integration: the parameters a host page hands us, the lookup and cart
// results, the error taxonomy, and the ports the orchestrator drives.
//
// Key concepts:
//   - ActionParams: SKU and quantity decoded from the host page's parameter blob
//   - LookupResult: the platform variant id resolved for a SKU, or not found
//   - CartItemResult: outcome of a cart add (added / unprocessable)
//   - CartSnapshot: read-only view of the shopper's cart
//
// Design Pattern: Ports & Adapters
//   - Ports (PartLookup, Cart, Notifier, CartCountView) are defined here
//   - Adapters live in the infrastructure layer (idlookup, shopify, notify)
package storefront
