package main

import (
	"context"
	"log"

	"services-api-server/models"
	"services-api-server/store"
)

var seedLocations = []string{
	"Asunción",
	"Ciudad del Este",
	"Encarnación",
	"Luque",
	"San Lorenzo",
}

var seedCategories = []string{
	"Plomería",
	"Electricidad",
	"Carpintería",
	"Limpieza",
	"Jardinería",
	"Pintura",
}

// seedReferences populates the location and category tables when they are
// empty. Re-running against a seeded database is a no-op.
func seedReferences(st store.Store) error {
	ctx := context.Background()

	locations, err := st.ListLocations(ctx)
	if err != nil {
		return err
	}
	if len(locations) == 0 {
		for _, name := range seedLocations {
			if err := st.CreateLocation(ctx, &models.Location{Name: name}); err != nil {
				return err
			}
		}
		log.Printf("🌱 Seeded %d locations", len(seedLocations))
	}

	categories, err := st.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		for _, name := range seedCategories {
			if err := st.CreateCategory(ctx, &models.Category{Name: name}); err != nil {
				return err
			}
		}
		log.Printf("🌱 Seeded %d categories", len(seedCategories))
	}

	return nil
}
