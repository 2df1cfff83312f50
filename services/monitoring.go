package services

import (
	"context"
	"log/slog"
	"market-hub/contract"
	"market-hub/domain"
	"market-hub/domain/event"
	"time"
)

// monitoringGateKey: the admin channel debounces as one logical source,
// whatever the envelope's source label says.
const monitoringGateKey = domain.AdminMonitoringGroup

// MonitoringRouter wraps the debounce coordinator around the fixed admin
// monitoring group. Join is role gated; NotifyUpdated is the trigger
// entrypoint consumed by external domain logic.
type MonitoringRouter struct {
	log         *slog.Logger
	registry    contract.IRegistry
	broadcaster contract.IBroadcaster
	debouncer   contract.IDebouncer
}

func NewMonitoringRouter(log *slog.Logger, registry contract.IRegistry,
	broadcaster contract.IBroadcaster, debouncer contract.IDebouncer) *MonitoringRouter {
	return &MonitoringRouter{
		log:         log,
		registry:    registry,
		broadcaster: broadcaster,
		debouncer:   debouncer,
	}
}

// AutoJoinOnConnect joins the connection to the monitoring group iff the
// identity carries the admin role. Connections lacking the role are never
// added, with no error surfaced.
func (r *MonitoringRouter) AutoJoinOnConnect(connID string, identity domain.Identity) bool {
	return r.join(connID, identity)
}

// JoinAdminMonitoring is the explicit join operation. It re-checks the
// role instead of trusting a prior auto-join.
func (r *MonitoringRouter) JoinAdminMonitoring(connID string, identity domain.Identity) bool {
	return r.join(connID, identity)
}

func (r *MonitoringRouter) join(connID string, identity domain.Identity) bool {
	if !identity.HasRole(domain.RoleAdmin) {
		r.log.Debug("monitoring join denied", "conn_id", connID, "user_id", identity.UserID)
		return false
	}
	r.registry.Join(connID, domain.AdminMonitoringGroup)
	return true
}

// NotifyUpdated collapses trigger bursts through the debounce gate and,
// when this call wins the window, broadcasts the envelope to the admin
// group. It never reports an error to the caller: the worst outcome of
// any fault here is a missed or delayed refresh for admin viewers.
func (r *MonitoringRouter) NotifyUpdated(ctx context.Context, source string, affectedCount int) {
	if !r.debouncer.Allow(monitoringGateKey) {
		return
	}

	envelope := event.NewMonitoringUpdated(source, affectedCount, time.Now())
	r.broadcaster.Broadcast(ctx, domain.AdminMonitoringGroup, envelope)
}
