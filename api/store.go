package main

import (
	"context"

	"github.com/jimiolaniyan/useraccounts/account"
	"github.com/jimiolaniyan/useraccounts/config"
)

func openStore(ctx context.Context, cfg *config.Config) (account.Store, func(), error) {
	switch cfg.Accounts.Store {
	case config.StoreMemory:
		return account.NewMemoryStore(), func() {}, nil
	case config.StoreMongo:
		client, err := account.ConnectMongo(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, nil, err
		}
		c := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		return account.NewMongoStore(c), func() { _ = client.Disconnect(context.Background()) }, nil
	case config.StoreRedis:
		client, err := account.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return account.NewRedisStore(client, cfg.Redis.Key), func() { _ = client.Close() }, nil
	default:
		s, err := account.OpenFileStore(cfg.Accounts.File)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
}

func serviceOptions(cfg *config.Config) []account.Option {
	opts := []account.Option{account.WithUniqueOnUpdate(cfg.Accounts.UniqueOnUpdate)}
	if cfg.Accounts.Hashing == config.HashingBcrypt {
		opts = append(opts, account.WithPasswordHasher(account.Bcrypt{Cost: cfg.Accounts.BcryptCost}))
	}
	return opts
}
