package domain

// TriggerKind identifies a lifecycle trigger.
type TriggerKind int

const (
	TriggerWillFinishLaunching TriggerKind = iota
	TriggerWillTerminate
	TriggerPowerOff
	TriggerReloadRequested
	TriggerMaintenanceRequested
)

// String returns a human-readable representation of the trigger kind.
func (k TriggerKind) String() string {
	switch k {
	case TriggerWillFinishLaunching:
		return "WillFinishLaunching"
	case TriggerWillTerminate:
		return "WillTerminate"
	case TriggerPowerOff:
		return "PowerOff"
	case TriggerReloadRequested:
		return "ReloadRequested"
	case TriggerMaintenanceRequested:
		return "MaintenanceRequested"
	default:
		return "Unknown"
	}
}

// Trigger is the input alphabet of the lifecycle controller.
// FullCheck is only meaningful for TriggerMaintenanceRequested.
type Trigger struct {
	Kind      TriggerKind
	FullCheck bool
}

// String returns a human-readable representation of the trigger.
func (t Trigger) String() string {
	if t.Kind == TriggerMaintenanceRequested && t.FullCheck {
		return t.Kind.String() + "(full)"
	}
	return t.Kind.String()
}

// WillFinishLaunching returns the launch trigger.
func WillFinishLaunching() Trigger { return Trigger{Kind: TriggerWillFinishLaunching} }

// WillTerminate returns the application-quit trigger.
func WillTerminate() Trigger { return Trigger{Kind: TriggerWillTerminate} }

// PowerOff returns the system power-off trigger.
func PowerOff() Trigger { return Trigger{Kind: TriggerPowerOff} }

// ReloadRequested returns the trigger for the cross-process reload signal.
func ReloadRequested() Trigger { return Trigger{Kind: TriggerReloadRequested} }

// Maintenance returns a maintenance trigger.
func Maintenance(fullCheck bool) Trigger {
	return Trigger{Kind: TriggerMaintenanceRequested, FullCheck: fullCheck}
}
