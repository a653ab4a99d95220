// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package nt37290_test

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/amoled/nt37290"
	"github.com/GermanBionicSystems/amoled/ssd2828"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	// Use spireg SPI port registry to find the first available SPI bus.
	p, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()
	dc := gpioreg.ByName("GPIO25")
	bridgeRst := gpioreg.ByName("GPIO24")
	panelRst := gpioreg.ByName("GPIO23")
	if dc == nil || bridgeRst == nil || panelRst == nil {
		log.Fatal("failed to find the gpio pins")
	}
	bridge, err := ssd2828.New(p, dc, bridgeRst, &ssd2828.DefaultOpts)
	if err != nil {
		log.Fatalf("failed to initialize the bridge: %v", err)
	}
	dev, err := nt37290.New(bridge, panelRst, &nt37290.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	dev.ModeSet(&nt37290.Modes[1])
	if err := dev.Enable(); err != nil {
		log.Fatal(err)
	}
	if rev, err := dev.ReadRevision(); err == nil {
		fmt.Printf("panel revision %s\n", rev)
	}
	// The host stops sending frames; the panel drops to 10Hz on its own.
	dev.SetSelfRefresh(true)
	fmt.Printf("idle refresh rate: %s\n", dev.IdleRefresh())
	if err := dev.Halt(); err != nil {
		log.Fatal(err)
	}
}
