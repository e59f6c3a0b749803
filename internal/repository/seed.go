package repository

import (
	"fmt"
	"time"

	"github.com/biletfinder/ticketing-service/internal/domain"
)

// SeedTrips returns the fixture catalog used in memory mode. Departures are
// anchored to now so search and reminder flows behave sensibly in dev.
func SeedTrips(now time.Time) []domain.Trip {
	day := now.Truncate(time.Hour).Add(time.Hour)
	return []domain.Trip{
		trip("BF101", "Paris", "Gare de Bercy", "Lyon", "Perrache", day.Add(24*time.Hour), 4*time.Hour+45*time.Minute, "FlixRoute", domain.VehicleBus, 2499),
		trip("BF102", "Lyon", "Perrache", "Paris", "Gare de Bercy", day.Add(26*time.Hour), 4*time.Hour+50*time.Minute, "FlixRoute", domain.VehicleBus, 2499),
		trip("BF205", "Paris", "Gare de Lyon", "Marseille", "Saint-Charles", day.Add(48*time.Hour), 3*time.Hour+20*time.Minute, "RapideRail", domain.VehicleTrain, 6900),
		trip("BF206", "Marseille", "Saint-Charles", "Nice", "Nice-Ville", day.Add(72*time.Hour), 2*time.Hour+35*time.Minute, "RapideRail", domain.VehicleTrain, 3500),
		trip("BF310", "Marseille", "Vieux-Port", "Bastia", "Port de Bastia", day.Add(7*24*time.Hour), 11*time.Hour, "Corsica Lines", domain.VehicleFerry, 8900),
		trip("BF411", "Toulouse", "Matabiau", "Bordeaux", "Saint-Jean", day.Add(36*time.Hour), 2*time.Hour+10*time.Minute, "SudExpress", domain.VehicleBus, 1899),
	}
}

// SeedSeats returns the fixture seat map for the seeded trips.
func SeedSeats(trips []domain.Trip) []domain.Seat {
	seats := make([]domain.Seat, 0, len(trips)*16)
	for _, t := range trips {
		for _, row := range []string{"A", "B", "C", "D"} {
			for n := 1; n <= 4; n++ {
				name := fmt.Sprintf("%s%d", row, n)
				seatType := domain.SeatTypeStandard
				switch n {
				case 1:
					seatType = domain.SeatTypeWindow
				case 4:
					seatType = domain.SeatTypeAisle
				}
				price := t.PriceCents
				if row == "A" {
					seatType = domain.SeatTypePremium
					price += 500
				}
				seats = append(seats, domain.Seat{
					ID:         name,
					TripID:     t.ID,
					Name:       name,
					Type:       seatType,
					PriceCents: price,
					Status:     domain.SeatStatusAvailable,
				})
			}
		}
	}
	return seats
}

func trip(id, fromCity, fromStation, toCity, toStation string, departs time.Time, duration time.Duration, company string, vehicle domain.VehicleType, priceCents int64) domain.Trip {
	return domain.Trip{
		ID:         id,
		Departure:  domain.TripStop{City: fromCity, Station: fromStation, Time: departs},
		Arrival:    domain.TripStop{City: toCity, Station: toStation, Time: departs.Add(duration)},
		Company:    company,
		Vehicle:    vehicle,
		Duration:   duration,
		PriceCents: priceCents,
	}
}
