package rimed

// SubscriptionCount returns the number of live subscriptions on the daemon's bus.
func SubscriptionCount(d *Daemon) int {
	return d.events.Count()
}
