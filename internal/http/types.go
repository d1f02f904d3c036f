package http

import (
	"net/http"

	"github.com/mkjeldsen/rallyrank/internal/club"
	"github.com/mkjeldsen/rallyrank/internal/config"
	"github.com/mkjeldsen/rallyrank/internal/metrics"
	"github.com/mkjeldsen/rallyrank/internal/notifier"
	"github.com/mkjeldsen/rallyrank/internal/playtomic"
	"github.com/mkjeldsen/rallyrank/internal/processor"
	"github.com/mkjeldsen/rallyrank/internal/pubsub"
)

type Server struct {
	Store           club.ClubStore
	Metrics         metrics.Metrics
	MetricsHandler  http.Handler
	Cfg             config.Config
	PlaytomicClient playtomic.PlaytomicClient
	Notifier        notifier.Notifier
	Processor       *processor.Processor
	Router          *http.ServeMux
	pubsub          pubsub.PubSubClient
}
