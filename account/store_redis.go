package account

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisTimeout = 5 * time.Second

//redisStore keeps accounts in a single hash: one field per account id holding
// the JSON encoded account
type redisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) Store {
	return &redisStore{client: client, key: key}
}

//ConnectRedis initialises a client for addr and validates connectivity with a ping
func ConnectRedis(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})

	ctx, cancel := context.WithTimeout(ctx, defaultRedisTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (r *redisStore) Has(ctx context.Context, id ID) (bool, error) {
	return r.client.HExists(ctx, r.key, string(id)).Result()
}

func (r *redisStore) Get(ctx context.Context, id ID) (*Account, error) {
	data, err := r.client.HGet(ctx, r.key, string(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var acc Account
	if err := json.Unmarshal(data, &acc); err != nil {
		return nil, fmt.Errorf("error decoding account %s: %w", id, err)
	}
	return &acc, nil
}

func (r *redisStore) Set(ctx context.Context, acc *Account) error {
	data, err := json.Marshal(acc)
	if err != nil {
		return fmt.Errorf("error encoding account %s: %w", acc.ID, err)
	}
	return r.client.HSet(ctx, r.key, string(acc.ID), data).Err()
}

func (r *redisStore) Entries(ctx context.Context) ([]*Account, error) {
	all, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, err
	}

	accounts := make([]*Account, 0, len(all))
	for id, data := range all {
		var acc Account
		if err := json.Unmarshal([]byte(data), &acc); err != nil {
			return nil, fmt.Errorf("error decoding account %s: %w", id, err)
		}
		accounts = append(accounts, &acc)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}
