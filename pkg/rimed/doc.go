// Package rimed provides an embeddable lifecycle controller for a Rime input
// method engine.
//
// A [Daemon] sets the engine up, deploys its data, projects the front end
// configuration into a light and a dark [Theme], and shuts the engine down in
// order on power-off or quit. It can be used through the rimed CLI or
// embedded in another Go program.
//
// # Basic Usage
//
//	d, err := rimed.New(rimed.Config{
//	    SharedDataDir: "/usr/share/rime-data",
//	    UserDataDir:   "/home/me/.local/share/rime",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := d.Start(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... run until shutdown signal ...
//
//	if err := d.Stop(); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// # Signals
//
// While running, the daemon redeploys when the reload signal is posted to
// its signal directory (see [Config.SignalDir] and the rimed reload command)
// and finalizes the engine when the operating system announces power-off.
//
// # Event Handling
//
// Implement [EventHandler] and pass it via [WithEventHandler] to observe
// state changes and deploy outcomes. Events are called synchronously from
// the control loop and should return quickly.
package rimed
