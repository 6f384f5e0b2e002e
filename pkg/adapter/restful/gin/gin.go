// Package gin wraps the gin-gonic engine instantiation, so the
// resource packages and the config adapter may depend on one local
// package instead of the third-party module directly.
package gin

import "github.com/gin-gonic/gin"

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

func Logger() HandlerFunc {
	return gin.Logger()
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}
