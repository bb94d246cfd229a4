// env печатает итоговый конфиг сервиса (.env + окружение) с замаскированными секретами.
// Удобно проверить, что подхватилось из .env перед запуском pricesvc.
package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"finch/internal/app"
)

const mask = "******"

func main() {
	cfg, err := app.LoadCfg()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(redact(cfg), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s_* resolved config:\n%s\n", app.AppName, out)
}

// redact скрывает пароли и учётные данные в URI.
func redact(cfg app.Config) app.Config {
	if cfg.DB.Password != "" {
		cfg.DB.Password = mask
	}
	if cfg.Redis.Password != "" {
		cfg.Redis.Password = mask
	}
	if cfg.ClickHouse.Password != "" {
		cfg.ClickHouse.Password = mask
	}
	if u, err := url.Parse(cfg.Mongo.URI); err == nil && u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), mask)
			cfg.Mongo.URI = u.String()
		}
	}
	return cfg
}
