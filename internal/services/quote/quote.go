// Package quote считает ознакомительную стоимость обучения для формы.
// Результаты кэшируются: стоимость детерминирована по возрасту,
// резидентству и числу месяцев.
package quote

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shivaniarts/enrollment-service/internal/lib/sl"
	"github.com/shivaniarts/enrollment-service/internal/models"
	"github.com/shivaniarts/enrollment-service/internal/pricing"
)

const cacheTTL = 12 * time.Hour

// Cache описывает методы кэша, используемые сервисом.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// Service считает стоимость и кэширует результат.
type Service struct {
	cache        Cache
	exchangeRate float64
	log          *slog.Logger
}

// New создает новый Service.
func New(cache Cache, exchangeRate float64, log *slog.Logger) *Service {
	return &Service{
		cache:        cache,
		exchangeRate: exchangeRate,
		log:          log,
	}
}

// Quote возвращает стоимость для указанных параметров формы.
// Нулевая стоимость не является ошибкой: форма показывает её как
// подсказку о недопустимом возрасте.
func (s *Service) Quote(residency string, age, months int) (*models.Quote, error) {
	key := fmt.Sprintf("quote:%s:%d:%d", residency, age, months)

	var cached models.Quote
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("failed to read quote from cache", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	result := pricing.QuoteFor(models.Residency(residency), age, months, s.exchangeRate)

	if err := s.cache.Set(key, result, cacheTTL); err != nil {
		s.log.Warn("failed to cache quote", sl.Err(err))
	}
	return &result, nil
}
