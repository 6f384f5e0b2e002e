package carsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/parking-backend/pkg/adapter/restful/gin/serdser"
)

type rawCreateCarReq struct {
	Name string `json:"name" binding:"required"`
}

type createCarReq struct {
	Name string
}

type rawAddUserReq struct {
	UserID string `json:"userId" binding:"required,uuid"`
}

type addUserReq struct {
	UserID uuid.UUID
	CarID  uuid.UUID
}

type updateCarReq struct {
	CarID uuid.UUID
	Name  string
}

type delUserReq struct {
	UserID uuid.UUID
	CarID  uuid.UUID
}

// DserCarID parses the cid path param as a UUID, responding with a
// 400 status code itself when the param is malformed.
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

func (rs *resource) DserCreateCarReq(c *gin.Context) *createCarReq {
	req := &rawCreateCarReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return &createCarReq{Name: req.Name}
}

func (rs *resource) DserUpdateCarReq(c *gin.Context) *updateCarReq {
	carID, ok := rs.DserCarID(c)
	if !ok {
		return nil
	}
	req := &rawCreateCarReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return &updateCarReq{CarID: carID, Name: req.Name}
}

func (rs *resource) DserAddUserReq(c *gin.Context) *addUserReq {
	carID, ok := rs.DserCarID(c)
	if !ok {
		return nil
	}
	req := &rawAddUserReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "userId", "Field userId is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &addUserReq{UserID: userID, CarID: carID}
}

func (rs *resource) DserDelUserReq(c *gin.Context) *delUserReq {
	carID, ok := rs.DserCarID(c)
	if !ok {
		return nil
	}
	userID, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "uid", "Path param uid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &delUserReq{UserID: userID, CarID: carID}
}
