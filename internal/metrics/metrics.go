package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	RegistrationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "user_registrations_total",
		Help: "Successful user registrations",
	})

	LoginAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "user_login_attempts_total",
		Help: "Login attempts by outcome",
	}, []string{"outcome"})
)

func Init() {
	prometheus.MustRegister(RegistrationsTotal, LoginAttemptsTotal)
}

// Handler exposes the Prometheus scrape endpoint on the Fiber app.
func Handler() fiber.Handler {
	h := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		h(c.Context())
		return nil
	}
}
