// Package bus is a small in-process event bus.
//
// Subscribers register a handler for an event kind and receive a [Token].
// Removing a subscription requires the token, so an owner only ever removes
// what it installed. Unsubscribe is idempotent.
//
// Two families of kinds are used by rimed: system events such as
// [KindPowerOff], and named cross-process signals created with [Named].
package bus
