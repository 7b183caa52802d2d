package policy

import (
	"context"

	"gomitas-be/internal/utils"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Actor is the authenticated caller a policy decision is made for.
// A zero Actor (ID 0) is anonymous.
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) Authenticated() bool {
	return a.ID != 0
}

// ActorFromContext rebuilds the actor from the values the auth middleware
// stored in the request context.
func ActorFromContext(ctx context.Context) Actor {
	id, _ := utils.GetUserIDFromContext(ctx)
	return Actor{
		ID:   id,
		Role: utils.GetUserRoleFromContext(ctx),
	}
}

// Policy decides who may invoke which operation. Injected everywhere a
// capability check is needed; implementations must never compare identities
// directly.
type Policy interface {
	CanCreateOrder(actor Actor) bool
	CanViewOrder(actor Actor, ownerID uint) bool
	CanUpdateOrder(actor Actor, ownerID uint) bool
	CanCancelOrder(actor Actor, ownerID uint) bool
	CanDeleteOrder(actor Actor, ownerID uint) bool
	CanListAllOrders(actor Actor) bool

	CanManageProducts(actor Actor) bool
	CanViewInventory(actor Actor) bool
	CanManageInventory(actor Actor) bool
	CanViewMetrics(actor Actor) bool
}

// RolePolicy is the role-based implementation: admins hold every
// capability, customers hold the self-service subset.
type RolePolicy struct{}

func NewRolePolicy() *RolePolicy {
	return &RolePolicy{}
}

func (p *RolePolicy) isAdmin(actor Actor) bool {
	return actor.Role == RoleAdmin
}

// Any authenticated user can place an order.
func (p *RolePolicy) CanCreateOrder(actor Actor) bool {
	return actor.Authenticated()
}

// The admin can view any order, a user can view their own.
func (p *RolePolicy) CanViewOrder(actor Actor, ownerID uint) bool {
	return p.isAdmin(actor) || (actor.Authenticated() && actor.ID == ownerID)
}

// Status transitions (processing) are reserved for the admin.
func (p *RolePolicy) CanUpdateOrder(actor Actor, ownerID uint) bool {
	return p.isAdmin(actor)
}

// Cancellation implies stock reversion, reserved for the admin.
func (p *RolePolicy) CanCancelOrder(actor Actor, ownerID uint) bool {
	return p.isAdmin(actor)
}

// Deletion uses the same permission as cancellation.
func (p *RolePolicy) CanDeleteOrder(actor Actor, ownerID uint) bool {
	return p.CanCancelOrder(actor, ownerID)
}

func (p *RolePolicy) CanListAllOrders(actor Actor) bool {
	return p.isAdmin(actor)
}

func (p *RolePolicy) CanManageProducts(actor Actor) bool {
	return p.isAdmin(actor)
}

func (p *RolePolicy) CanViewInventory(actor Actor) bool {
	return actor.Authenticated()
}

func (p *RolePolicy) CanManageInventory(actor Actor) bool {
	return p.isAdmin(actor)
}

func (p *RolePolicy) CanViewMetrics(actor Actor) bool {
	return p.isAdmin(actor)
}
