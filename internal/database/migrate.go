package database

import (
	"gorm.io/gorm"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/auth"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/blog"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/cart"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/heat"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/hero"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/media"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/orders"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/products"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/seo"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/users"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&users.User{},
		&auth.Session{},
		&products.Category{},
		&products.Product{},
		&cart.Cart{},
		&cart.CartItem{},
		&orders.Order{},
		&orders.OrderItem{},
		&orders.OrderEvent{},
		&blog.Post{},
		&hero.Image{},
		&media.Item{},
		&seo.Metadata{},
		&heat.Profile{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
