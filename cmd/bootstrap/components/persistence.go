package components

import (
	"context"

	"slotbooker/internal/infra/bookingrepo"
	"slotbooker/internal/infra/db"
	"slotbooker/internal/infra/slotrepo"
	"slotbooker/internal/pkg/clock"
	"slotbooker/internal/pkg/config"
	"slotbooker/internal/usecase/commands"
	"slotbooker/internal/usecase/queries"
	"slotbooker/internal/usecase/reserve"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewStores,
	),
)

// Stores binds one store backend to every consumer-side interface. The claim
// store is handed only to the reservation engine module; catalog and booking
// code never see the capacity primitives.
type Stores struct {
	fx.Out

	SlotRepo    commands.SlotRepository
	SlotRead    queries.SlotReadStore
	ClaimStore  reserve.ClaimStore
	BookingRepo commands.BookingRepository
	BookingRead queries.BookingReadStore
}

func NewStores(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) (Stores, error) {
	if cfg.Store.Driver == "memory" {
		slots := slotrepo.NewMemoryStore(clk)
		bookings := bookingrepo.NewMemoryStore(slots, clk)
		return Stores{
			SlotRepo:    slots,
			SlotRead:    slots,
			ClaimStore:  slots,
			BookingRepo: bookings,
			BookingRead: bookingrepo.NewMemoryReadStore(bookings),
		}, nil
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return Stores{}, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	slots := slotrepo.NewPostgresStore(pool)
	return Stores{
		SlotRepo:    slots,
		SlotRead:    slots,
		ClaimStore:  slots,
		BookingRepo: bookingrepo.NewPostgresRepository(pool),
		BookingRead: bookingrepo.NewPostgresReadStore(pool),
	}, nil
}
