package beckn

import (
	"fmt"
	"unicode"

	"github.com/shopspring/decimal"

	"ondc-seller-adapter/internal/model"
)

const (
	defaultCategory = "grocery"
	maxOrderCount   = "99"
	returnWindow    = "P7D"
	timeToShip      = "PT2H"
)

// ProjectProvider maps a store and its active products into a Beckn
// provider. The caller filters products to is_active; the projector
// projects exactly what it is given, so an empty slice yields a
// provider with an empty item list. The provider location comes from
// the store's own address fields and every item references it through
// location_id {store_id}_loc1.
func ProjectProvider(store model.Store, products []model.Product) model.Provider {
	locationID := fmt.Sprintf("%s_loc1", store.StoreID)

	items := make([]model.Item, 0, len(products))
	for _, p := range products {
		items = append(items, projectItem(p, locationID))
	}

	return model.Provider{
		ID: store.StoreID,
		Descriptor: model.Descriptor{
			Name:      store.StoreName,
			ShortDesc: truncate(store.Description, 100),
			LongDesc:  store.Description,
			Images:    imageList(store.LogoURL),
		},
		Locations: []model.Location{
			{
				ID:  locationID,
				GPS: store.Address.GPS,
				Address: model.Address{
					Street:   store.Address.Street,
					City:     store.Address.City,
					State:    store.Address.State,
					Country:  contextCountry,
					AreaCode: store.Address.AreaCode,
				},
			},
		},
		Categories: projectCategories(store, products),
		Items:      items,
	}
}

func projectItem(p model.Product, locationID string) model.Item {
	images := make([]model.Image, 0, 3)
	for i, url := range p.Images {
		if i == 3 {
			break
		}
		images = append(images, model.Image{URL: url})
	}

	price := decimal.NewFromFloat(p.Price).StringFixed(2)

	return model.Item{
		ID: p.ProductID,
		Descriptor: model.Descriptor{
			Name:      p.Name,
			ShortDesc: truncate(p.Description, 100),
			LongDesc:  p.Description,
			Images:    images,
		},
		Price: model.Price{
			Currency:     "INR",
			Value:        price,
			MaximumValue: price,
		},
		Quantity: &model.ItemQuantity{
			Available: &model.QuantityCount{Count: fmt.Sprintf("%d", p.Stock)},
			Maximum:   &model.QuantityCount{Count: maxOrderCount},
		},
		CategoryID:         categoryOf(p.Category),
		LocationID:         locationID,
		Returnable:         true,
		Cancellable:        true,
		ReturnWindow:       returnWindow,
		SellerPickupReturn: true,
		TimeToShip:         timeToShip,
		AvailableOnCOD:     true,
		Tags: []model.Tag{
			{
				Code: "origin",
				List: []model.TagEntry{{Code: "country", Value: contextCountry}},
			},
		},
	}
}

// projectCategories emits the store's own category followed by every
// distinct product category, first-seen order. Each item's category_id
// resolves to one of these entries.
func projectCategories(store model.Store, products []model.Product) []model.Category {
	ids := []string{categoryOf(store.Category)}
	seen := map[string]bool{ids[0]: true}
	for _, p := range products {
		id := categoryOf(p.Category)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	cats := make([]model.Category, 0, len(ids))
	for _, id := range ids {
		cats = append(cats, model.Category{
			ID:         id,
			Descriptor: model.Descriptor{Name: titleCase(id)},
		})
	}
	return cats
}

func categoryOf(category string) string {
	if category == "" {
		return defaultCategory
	}
	return category
}

func imageList(url string) []model.Image {
	if url == "" {
		return nil
	}
	return []model.Image{{URL: url}}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func titleCase(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
