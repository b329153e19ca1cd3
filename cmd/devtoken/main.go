// devtoken печатает access-токен автора для локальной отработки защищённых маршрутов.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"blogfeed/internal/config"
	"blogfeed/internal/utils"
)

func main() {
	userID := flag.String("user", "", "id автора (users.id)")
	ttl := flag.Duration("ttl", time.Hour, "время жизни токена")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "нужен -user")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ошибка конфига:", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET не задан")
		os.Exit(1)
	}

	token, err := utils.GenerateToken(cfg.JWTSecret, *userID, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ошибка подписи:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
