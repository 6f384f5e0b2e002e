// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "github.com/google/uuid"

// Car models a car which may be shared among multiple owning users.
// A car is only created together with its initial owning user and may
// not exist without at least one owner. The ownership relation itself
// is not stored in this struct; it is the responsibility of the cars
// repository which exclusively owns the users-cars relation.
type Car struct {
	ID   uuid.UUID // car identity
	Name string    // name of the car
}

// CarInfo enriches a Car with its current owner list and its current
// parking location, as assembled by a read-side join. The Parking
// field is nil for a car which has never been parked.
// This information is never stored denormalized; it is computed
// whenever a car is fetched.
type CarInfo struct {
	Car

	Owners  []User        // users currently owning the car
	Parking *ParkLocation // current parking location, if any
}
