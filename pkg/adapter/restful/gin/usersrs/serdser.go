package usersrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/parking-backend/pkg/adapter/restful/gin/serdser"
)

type rawModifyUsernameReq struct {
	Username string `json:"username" binding:"required"`
}

type modifyUsernameReq struct {
	UserID   uuid.UUID
	Username string
}

func (rs *resource) DserUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "uid", "Path param uid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return uuid.Nil, false
	}
	return userID, true
}

func (rs *resource) DserModifyUsernameReq(c *gin.Context) *modifyUsernameReq {
	userID, ok := rs.DserUserID(c)
	if !ok {
		return nil
	}
	req := &rawModifyUsernameReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return &modifyUsernameReq{UserID: userID, Username: req.Username}
}
