package parksrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/parking-backend/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/parking-backend/pkg/core/usecase/parkuc"
)

type rawParkReq struct {
	UserWhoParkID string `json:"userWhoParkId" binding:"required,uuid"`
	StartTime     string `json:"startTime" binding:"required"`
	EndTime       string `json:"endTime" binding:"required"`
	Location      string `json:"location" binding:"required"`
	Reminder      bool   `json:"reminder"`
}

type parkWriteReq struct {
	CarID  uuid.UUID
	ParkID uuid.UUID
	Form   parkuc.Form
}

func (rs *resource) DserCarID(c *gin.Context) (uuid.UUID, bool) {
	carID, err := uuid.Parse(c.Param("cid"))
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "cid", "Path param cid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return uuid.Nil, false
	}
	return carID, true
}

// dserForm binds and converts the common body of the create and
// update requests, responding with a 400 status code itself for a
// malformed body. Times must follow the RFC 3339 format.
func (rs *resource) dserForm(c *gin.Context) (parkuc.Form, bool) {
	req := &rawParkReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return parkuc.Form{}, false
	}
	var errs map[string][]string
	parkerID, err := uuid.Parse(req.UserWhoParkID)
	serdser.Assert(
		&errs, err == nil,
		"userWhoParkId", "Field userWhoParkId is not UUID.",
	)
	begin, err := time.Parse(time.RFC3339, req.StartTime)
	serdser.Assert(
		&errs, err == nil,
		"startTime", "Field startTime is not an RFC 3339 time.",
	)
	end, err := time.Parse(time.RFC3339, req.EndTime)
	serdser.Assert(
		&errs, err == nil,
		"endTime", "Field endTime is not an RFC 3339 time.",
	)
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return parkuc.Form{}, false
	}
	return parkuc.Form{
		ParkerID: parkerID,
		Begin:    begin,
		End:      end,
		Location: req.Location,
		Reminder: req.Reminder,
	}, true
}

func (rs *resource) DserCreateParkReq(c *gin.Context) *parkWriteReq {
	carID, ok := rs.DserCarID(c)
	if !ok {
		return nil
	}
	f, ok := rs.dserForm(c)
	if !ok {
		return nil
	}
	return &parkWriteReq{CarID: carID, Form: f}
}

func (rs *resource) DserUpdateParkReq(c *gin.Context) *parkWriteReq {
	carID, ok := rs.DserCarID(c)
	if !ok {
		return nil
	}
	parkID, err := uuid.Parse(c.Param("pid"))
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "pid", "Path param pid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	f, ok := rs.dserForm(c)
	if !ok {
		return nil
	}
	return &parkWriteReq{CarID: carID, ParkID: parkID, Form: f}
}
