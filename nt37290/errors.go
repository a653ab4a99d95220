// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package nt37290

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
)

// RecipeError is returned when no command recipe realizes the requested pair
// of refresh rates. Nothing is sent to the panel and the committed state is
// retained.
type RecipeError struct {
	Active physic.Frequency
	Idle   physic.Frequency
	// Auto is true when automatic frame insertion was requested.
	Auto bool
}

func (e *RecipeError) Error() string {
	if e.Auto {
		return fmt.Sprintf("nt37290: unsupported idle refresh rate %s for auto mode at %s", e.Idle, e.Active)
	}
	return fmt.Sprintf("nt37290: unsupported refresh rate %s for manual mode", e.Active)
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("nt37290: %w", err)
}
