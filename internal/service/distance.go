package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/hortaconecta/hortaconecta-go/internal/geo"
	"github.com/hortaconecta/hortaconecta-go/internal/model"
)

// Origin selects which address a garden listing measures distance from.
type Origin string

const (
	// OriginOwner measures from the garden owner's own stored address.
	OriginOwner Origin = "owner"
	// OriginRequester measures from the requesting user's stored address.
	OriginRequester Origin = "requester"
)

// ParseOrigin validates an Origin name.
func ParseOrigin(s string) (Origin, error) {
	switch o := Origin(s); o {
	case OriginOwner, OriginRequester:
		return o, nil
	default:
		return "", fmt.Errorf("unknown distance origin %q (must be owner or requester)", s)
	}
}

// DefaultDistanceWorkers bounds concurrent provider calls per listing.
const DefaultDistanceWorkers = 4

// DistanceAggregator annotates garden and product listings with travel distances.
// Lookups run concurrently up to the worker limit. A failed lookup marks only
// its own item; storage failures fail the whole listing.
type DistanceAggregator struct {
	gardens      GardenStore
	products     ProductStore
	resolver     DistanceResolver
	workers      int
	gardenOrigin Origin
}

// NewDistanceAggregator creates a DistanceAggregator.
func NewDistanceAggregator(gardens GardenStore, products ProductStore, resolver DistanceResolver, workers int, gardenOrigin Origin) *DistanceAggregator {
	if workers < 1 {
		workers = DefaultDistanceWorkers
	}
	if gardenOrigin == "" {
		gardenOrigin = OriginOwner
	}
	return &DistanceAggregator{
		gardens:      gardens,
		products:     products,
		resolver:     resolver,
		workers:      workers,
		gardenOrigin: gardenOrigin,
	}
}

type route struct {
	origin      string
	destination string
}

type distanceResult struct {
	distance geo.Distance
	err      error
}

// Gardens lists every garden with its distance. With OriginOwner the distance
// runs from each owner's address to their garden; with OriginRequester it runs
// from requesterAddress.
func (a *DistanceAggregator) Gardens(ctx context.Context, requesterAddress string) ([]model.GardenResponse, error) {
	gardens, err := a.gardens.ListWithOwners(ctx)
	if err != nil {
		return nil, err
	}

	routes := make([]route, len(gardens))
	for i, g := range gardens {
		origin := g.OwnerAddress
		if a.gardenOrigin == OriginRequester {
			origin = requesterAddress
		}
		routes[i] = route{origin: origin, destination: g.Address}
	}

	results, err := a.resolveAll(ctx, routes)
	if err != nil {
		return nil, err
	}

	out := make([]model.GardenResponse, len(gardens))
	for i, g := range gardens {
		out[i] = gardenResponse(g.Garden, results[i])
	}
	return out, nil
}

// Garden annotates a single garden with its distance from requesterAddress.
func (a *DistanceAggregator) Garden(ctx context.Context, requesterAddress string, g model.Garden) (model.GardenResponse, error) {
	results, err := a.resolveAll(ctx, []route{{origin: requesterAddress, destination: g.Address}})
	if err != nil {
		return model.GardenResponse{}, err
	}
	return gardenResponse(g, results[0]), nil
}

// Products lists every product with its garden and the garden's distance
// from requesterAddress.
func (a *DistanceAggregator) Products(ctx context.Context, requesterAddress string) ([]model.ProductWithGardenResponse, error) {
	rows, err := a.products.ListWithGardens(ctx)
	if err != nil {
		return nil, err
	}

	routes := make([]route, len(rows))
	for i, row := range rows {
		routes[i] = route{origin: requesterAddress, destination: row.GardenAddress}
	}

	results, err := a.resolveAll(ctx, routes)
	if err != nil {
		return nil, err
	}

	out := make([]model.ProductWithGardenResponse, len(rows))
	for i, row := range rows {
		info := model.ProductGardenInfo{
			ID:       row.GardenID,
			Address:  row.GardenAddress,
			UserName: row.OwnerName,
		}
		if res := results[i]; res.err != nil {
			info.DistanceError = res.err.Error()
		} else {
			info.Distance = res.distance.Text
			info.DistanceMeters = res.distance.Meters
		}
		out[i] = model.ProductWithGardenResponse{
			ProductResponse: productResponse(row.Product),
			Garden:          info,
		}
	}
	return out, nil
}

// resolveAll looks up each distinct route once and returns results in input order.
// It only fails when ctx is done.
func (a *DistanceAggregator) resolveAll(ctx context.Context, routes []route) ([]distanceResult, error) {
	index := make(map[route]int, len(routes))
	var unique []route
	for _, rt := range routes {
		if _, ok := index[rt]; !ok {
			index[rt] = len(unique)
			unique = append(unique, rt)
		}
	}

	resolved := make([]distanceResult, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, rt := range unique {
		i, rt := i, rt
		g.Go(func() error {
			d, err := a.resolver.Distance(gctx, rt.origin, rt.destination)
			if err != nil {
				slog.Warn("distance lookup failed", "origin", rt.origin, "destination", rt.destination, "error", err)
			}
			resolved[i] = distanceResult{distance: d, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]distanceResult, len(routes))
	for i, rt := range routes {
		results[i] = resolved[index[rt]]
	}
	return results, nil
}

func gardenResponse(g model.Garden, res distanceResult) model.GardenResponse {
	resp := model.GardenResponse{
		ID:       g.ID,
		Category: g.Category,
		Address:  g.Address,
	}
	if res.err != nil {
		resp.DistanceError = res.err.Error()
		return resp
	}
	resp.Distance = res.distance.Text
	resp.DistanceMeters = res.distance.Meters
	return resp
}
