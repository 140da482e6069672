package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Create creates a new record
func (p *Postgres) Create(ctx context.Context, value interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.client.WithContext(ctx).Create(value).Error
}

// Find finds records that match the given conditions
func (p *Postgres) Find(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.client.WithContext(ctx).Find(dest, conditions...).Error
}

// First finds the first record that matches the given conditions
func (p *Postgres) First(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.client.WithContext(ctx).First(dest, conditions...).Error
}

// Delete deletes records that match the given conditions
func (p *Postgres) Delete(ctx context.Context, value interface{}, conditions ...interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.client.WithContext(ctx).Delete(value, conditions...).Error
}

// Migrate runs database migrations for the provided models
func (p *Postgres) Migrate(models ...interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.client.AutoMigrate(models...)
}

// DB returns the underlying GORM DB client for cases where direct access
// to GORM is needed
func (p *Postgres) DB() *gorm.DB {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.client
}
