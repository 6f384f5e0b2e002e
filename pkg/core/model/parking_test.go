package model_test

import (
	"testing"
	"time"

	"github.com/momeni/parking-backend/pkg/core/model"
	"github.com/stretchr/testify/assert"
)

func TestParkLocationValidate(t *testing.T) {
	now := time.Now()
	for _, tc := range []struct {
		name string
		p    model.ParkLocation
		err  string // empty for an expected pass
	}{
		{
			name: "valid interval",
			p: model.ParkLocation{
				StartTime: now,
				EndTime:   now.Add(time.Hour),
				Location:  "3rd and Main",
			},
		},
		{
			name: "instantaneous interval",
			p: model.ParkLocation{
				StartTime: now,
				EndTime:   now,
				Location:  "3rd and Main",
			},
		},
		{
			name: "blank location",
			p: model.ParkLocation{
				StartTime: now,
				EndTime:   now.Add(time.Hour),
			},
			err: "location can not be blank",
		},
		{
			name: "missing times",
			p: model.ParkLocation{
				Location: "3rd and Main",
			},
			err: "parking time is invalid",
		},
		{
			name: "reversed interval",
			p: model.ParkLocation{
				StartTime: now.Add(time.Hour),
				EndTime:   now,
				Location:  "3rd and Main",
			},
			err: model.ErrParkingTimeOrder.Error(),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate()
			if tc.err == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.err)
		})
	}
}
