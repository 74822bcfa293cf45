package eventdedup

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// Guard corta reentregas do mesmo evento de webhook antes de tocar o banco.
// É uma otimização: sem redis (ou com redis fora do ar) o pipeline continua
// correto, porque a idempotência real está no ledger. A marcação fica a cargo
// do chamador, depois do processamento ter sucesso; um evento que falhou
// continua elegível quando o provedor reentregar.
type Guard struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr string) *Guard {
	if addr == "" {
		return nil
	}
	return &Guard{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    24 * time.Hour,
	}
}

// Seen informa se o evento já foi processado. Em caso de erro no redis assume
// que não: reprocessar é seguro, perder evento não.
func (g *Guard) Seen(ctx context.Context, eventID string) bool {
	if g == nil || eventID == "" {
		return false
	}

	n, err := g.client.Exists(ctx, key(eventID)).Result()
	if err != nil {
		log.Printf("eventdedup: redis error, processing anyway: %v", err)
		return false
	}
	return n > 0
}

// Mark registra o evento como processado.
func (g *Guard) Mark(ctx context.Context, eventID string) {
	if g == nil || eventID == "" {
		return
	}

	if err := g.client.Set(ctx, key(eventID), 1, g.ttl).Err(); err != nil {
		log.Printf("eventdedup: failed to mark event %s: %v", eventID, err)
	}
}

func key(eventID string) string {
	return "webhook:event:" + eventID
}
