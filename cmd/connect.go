package cmd

import (
	"context"
	"sync"

	"github.com/dlive-cli/dlive/auth"
	"github.com/dlive-cli/dlive/config"
	"github.com/dlive-cli/dlive/constant"
	"github.com/dlive-cli/dlive/dispatch"
	"github.com/dlive-cli/dlive/dlive"
	"github.com/dlive-cli/dlive/graphql"
	"github.com/dlive-cli/dlive/history"
	"github.com/dlive-cli/dlive/key"
	"github.com/dlive-cli/dlive/listing"
	"github.com/dlive-cli/dlive/network"
	"github.com/dlive-cli/dlive/quality"
	"github.com/dlive-cli/dlive/search"
	"github.com/dlive-cli/dlive/where"
	"github.com/spf13/viper"
)

var (
	searches = sync.OnceValue(func() *search.Store {
		return search.New(where.Searches())
	})
	watched = sync.OnceValue(func() *history.Store {
		return history.New(where.History())
	})
)

// connect builds a dispatcher over the configured DLive endpoint.
// Options given by the caller are applied after the stores are attached.
func connect(ctx context.Context, options ...dispatch.Option) (*dispatch.Dispatcher, error) {
	client := network.New(network.Options{
		RateLimit:   viper.GetFloat64(key.NetworkRateLimit),
		Fingerprint: viper.GetBool(key.NetworkFingerprint),
	})

	executor := graphql.New(
		viper.GetString(key.DliveEndpoint),
		dlive.Operations,
		graphql.WithClient(client),
		graphql.WithTimeout(config.Timeout()),
		graphql.WithToken(auth.Token),
	)

	settings := config.Settings{}
	service, err := dlive.NewService(ctx, executor, quality.NewFetcher(client), settings)
	if err != nil {
		return nil, err
	}

	defaults := []dispatch.Option{
		dispatch.WithSearches(searches()),
		dispatch.WithWatched(watched()),
	}

	return dispatch.New(service, settings, append(defaults, options...)...), nil
}

// actionPath is the dispatcher path running action with params.
func actionPath(action string, params listing.Params) string {
	return listing.BuildURL(constant.Dlive+"://", params.With("action", action))
}
