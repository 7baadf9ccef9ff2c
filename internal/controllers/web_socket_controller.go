package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"transport_booking/internal/middleware"
)

const feedWriteWait = 10 * time.Second

// feedConn bounds every hub write so a peer that stops reading gets cut off.
type feedConn struct {
	*websocket.Conn
}

func (f feedConn) WriteJSON(v interface{}) error {
	if err := f.SetWriteDeadline(time.Now().Add(feedWriteWait)); err != nil {
		return err
	}
	return f.Conn.WriteJSON(v)
}

// BookingFeed upgrades a driver's connection and streams booking events until
// the client goes away. Anything the client sends is ignored.
func (ctl *Controller) BookingFeed(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)

	conn, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		logrus.WithError(err).WithField("user_id", sess.UserID).Warn("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	fields := logrus.Fields{
		"user_id":   sess.UserID,
		"driver_id": sess.DriverID,
		"conn_ptr":  fmt.Sprintf("%p", conn),
	}
	logrus.WithFields(fields).Info("Driver booking feed connected.")

	client := feedConn{conn}
	ctl.hub.Register(client)
	defer ctl.hub.Unregister(client)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).WithFields(fields).Warn("Error reading from booking feed client")
			}
			break
		}
	}
	logrus.WithFields(fields).Info("Driver booking feed closed.")
}
