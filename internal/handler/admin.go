package handler

import (
	"net/http"

	"nedpos/internal/apierror"
	"nedpos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const deadLetterPeek = 20

type deadLetterQueue struct {
	Queue  string            `json:"queue"`
	Length int64             `json:"length"`
	Newest []worker.DLQEntry `json:"newest"`
}

// DeadLetters godoc
// @Summary Dead letter queues of the job workers
// @Description Length and newest entries of each queue's DLQ.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} deadLetterQueue
// @Failure 503 {object} apierror.APIError
// @Router /v1/admin/dead-letters [get]
func DeadLetters(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.JSON(http.StatusServiceUnavailable, apierror.New("Redis is not configured"))
			return
		}
		ctx := c.Request.Context()
		out := make([]deadLetterQueue, 0, 2)
		for _, q := range []string{worker.QueueReceipts, worker.QueueEmail} {
			n, err := worker.DLQLength(ctx, rdb, q)
			if err != nil {
				respondError(c, err)
				return
			}
			entries, err := worker.DLQPeek(ctx, rdb, q, deadLetterPeek)
			if err != nil {
				respondError(c, err)
				return
			}
			out = append(out, deadLetterQueue{Queue: q, Length: n, Newest: entries})
		}
		c.JSON(http.StatusOK, out)
	}
}
