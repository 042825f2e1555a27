package components

import (
	"hotel-reservation/internal/handler"
	"hotel-reservation/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewRoomHandler,
		api.NewAdminHandler,
		func(r *api.ReservationHandler, room *api.RoomHandler, admin *api.AdminHandler) handler.Handlers {
			return handler.Handlers{Reservation: r, Room: room, Admin: admin}
		},
	),
	fx.Invoke(handler.NewRouter),
)
