package health

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/hellofresh/health-go/v5"
	healthMongo "github.com/hellofresh/health-go/v5/checks/mongo"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"

	"github.com/rogerio-castellano/inventory-dashboard/internal/config"
)

const component = "inventory-dashboard"

// NewHealthHandler registers a check for the configured store and, when a
// Redis address is set, for the flash message store.
func NewHealthHandler(cfg *config.Config, version string) (*health.Health, error) {
	checks := []health.Config{}

	switch cfg.Store.Driver {
	case config.DriverMongo:
		checks = append(checks, health.Config{
			Name:      "mongo",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: healthMongo.New(healthMongo.Config{
				DSN:            cfg.Mongo.URI,
				TimeoutConnect: 3 * time.Second,
				TimeoutPing:    2 * time.Second,
			}),
		})
	case config.DriverPostgres:
		checks = append(checks, health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Postgres.URL,
			}),
		})
	}

	if cfg.Redis.Addr != "" {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: true,
			Check: healthRedis.New(healthRedis.Config{
				DSN: RedisDSN(cfg.Redis),
			}),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    component,
			Version: version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

func RedisDSN(r config.Redis) string {
	u := url.URL{
		Scheme: "redis",
		Host:   r.Addr,
		Path:   "/" + strconv.Itoa(r.DB),
	}
	if r.Password != "" {
		u.User = url.UserPassword("", r.Password)
	}
	return u.String()
}
