package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/petgroom/admin-api/internal/model"
	appointmentService "github.com/petgroom/admin-api/internal/service/appointment"
	clientService "github.com/petgroom/admin-api/internal/service/client"
)

type petSeed struct {
	name  string
	typ   string
	breed string
	notes string
}

type clientSeed struct {
	name    string
	phone   string
	email   string
	address string
	pets    []petSeed
}

type appointmentSeed struct {
	time    string
	pet     string
	owner   string
	service string
	status  model.AppointmentStatus
	notes   string
}

var clients = []clientSeed{
	{
		name: "Maria Silva", phone: "(11) 99999-1234", email: "maria.silva@email.com",
		address: "Rua das Flores, 123 - Centro",
		pets: []petSeed{
			{name: "Thor", typ: "dog", breed: "Golden Retriever"},
			{name: "Mel", typ: "dog", breed: "Poodle"},
		},
	},
	{
		name: "João Santos", phone: "(11) 98888-5678", email: "joao.santos@email.com",
		pets: []petSeed{{name: "Luna", typ: "cat", breed: "Siamês"}},
	},
	{
		name: "Ana Costa", phone: "(11) 97777-9012", email: "ana.costa@email.com",
		address: "Av. Brasil, 456 - Jardins",
		pets: []petSeed{{name: "Max", typ: "dog", breed: "Labrador", notes: "Alérgico a shampoo comum"}},
	},
	{
		name: "Pedro Lima", phone: "(11) 96666-3456", email: "pedro.lima@email.com",
		pets: []petSeed{
			{name: "Bella", typ: "dog", breed: "Shih Tzu"},
			{name: "Rex", typ: "dog", breed: "Pastor Alemão"},
		},
	},
	{
		name: "Carla Mendes", phone: "(11) 95555-7890", email: "carla.mendes@email.com",
		pets: []petSeed{{name: "Simba", typ: "cat", breed: "Persa"}},
	},
}

var agenda = []appointmentSeed{
	{time: "09:00", pet: "Thor", owner: "Maria Silva", service: "bath_grooming", status: model.AppointmentStatusConfirmed},
	{time: "10:30", pet: "Luna", owner: "João Santos", service: "bath", status: model.AppointmentStatusPending},
	{time: "11:00", pet: "Max", owner: "Ana Costa", service: "hygiene", status: model.AppointmentStatusCompleted,
		notes: "Pet nervoso, precisa de cuidado extra"},
	{time: "14:00", pet: "Bella", owner: "Pedro Lima", service: "bath_grooming", status: model.AppointmentStatusConfirmed},
	{time: "15:30", pet: "Simba", owner: "Carla Mendes", service: "nails", status: model.AppointmentStatusPending},
}

// Load registers the sample directory and today's agenda through the
// regular store commands, so every seeded record satisfies the same
// invariants as a user-created one.
func Load(ctx context.Context, clientSvc *clientService.Service, aptSvc *appointmentService.Service) error {
	type petRef struct {
		clientID string
		petID    string
	}
	petsByName := make(map[string]petRef)

	for _, cs := range clients {
		created, err := clientSvc.Register(ctx, &model.CreateClientRequest{
			Name:    cs.name,
			Phone:   cs.phone,
			Email:   cs.email,
			Address: cs.address,
		})
		if err != nil {
			return fmt.Errorf("failed to seed client %s: %w", cs.name, err)
		}
		for _, ps := range cs.pets {
			pet, err := clientSvc.AddPet(ctx, created.ID, &model.CreatePetRequest{
				Name:  ps.name,
				Type:  ps.typ,
				Breed: ps.breed,
				Notes: ps.notes,
			})
			if err != nil {
				return fmt.Errorf("failed to seed pet %s: %w", ps.name, err)
			}
			petsByName[ps.name] = petRef{clientID: created.ID.String(), petID: pet.ID.String()}
		}
	}

	today := time.Now().UTC().Format(model.DateLayout)
	for _, as := range agenda {
		ref := petsByName[as.pet]
		created, err := aptSvc.Create(ctx, &model.CreateAppointmentRequest{
			ClientID: ref.clientID,
			PetID:    ref.petID,
			Date:     today,
			Time:     as.time,
			PetType:  string(petType(as.pet)),
			Service:  as.service,
			Notes:    as.notes,
		})
		if err != nil {
			return fmt.Errorf("failed to seed appointment for %s: %w", as.pet, err)
		}

		// Walk the state machine to the target status; seeded records take
		// the same transition path as real ones.
		switch as.status {
		case model.AppointmentStatusConfirmed:
			_, err = aptSvc.Transition(ctx, created.ID, model.AppointmentStatusConfirmed)
		case model.AppointmentStatusCompleted:
			if _, err = aptSvc.Transition(ctx, created.ID, model.AppointmentStatusConfirmed); err == nil {
				_, err = aptSvc.Transition(ctx, created.ID, model.AppointmentStatusCompleted)
			}
		case model.AppointmentStatusCancelled:
			_, err = aptSvc.Transition(ctx, created.ID, model.AppointmentStatusCancelled)
		}
		if err != nil {
			return fmt.Errorf("failed to seed status for %s: %w", as.pet, err)
		}
	}

	return nil
}

func petType(name string) model.PetType {
	switch name {
	case "Luna", "Simba":
		return model.PetTypeCat
	default:
		return model.PetTypeDog
	}
}
