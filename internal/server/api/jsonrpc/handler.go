package jsonrpc

import (
	"fmt"

	"github.com/civicteam/gateway-derive/internal/core/gatewayderive"
	"github.com/civicteam/gateway-derive/internal/server/methods"
)

// Handler dispatches the six gwderived entrypoints by JSON-RPC method name.
// One Handler is bound to a single *gatewayderive.Engine and shared across
// requests; the Engine itself is stateless, so concurrent calls are safe as
// long as the underlying AccountStore, GatewayVerifier and
// GatewayProgramClient are.
type Handler struct {
	engine  *gatewayderive.Engine
	methods map[string]func(*gatewayderive.Engine, interface{}) (interface{}, error)
}

// NewHandler builds a Handler wired to engine with every entrypoint
// registered under its spec.md §4.7 method name.
func NewHandler(engine *gatewayderive.Engine) *Handler {
	h := &Handler{
		engine:  engine,
		methods: make(map[string]func(*gatewayderive.Engine, interface{}) (interface{}, error)),
	}

	h.methods["initialize"] = methods.HandleInitialize
	h.methods["issue"] = methods.HandleIssue
	h.methods["refresh"] = methods.HandleRefresh
	h.methods["create_fee"] = methods.HandleCreateFee
	h.methods["update_fee"] = methods.HandleUpdateFee
	h.methods["remove_fee"] = methods.HandleRemoveFee

	return h
}

// Handle dispatches a JSON-RPC method to the appropriate handler.
func (h *Handler) Handle(method string, params interface{}) (interface{}, error) {
	fn, exists := h.methods[method]
	if !exists {
		return nil, fmt.Errorf("method %s not found", method)
	}
	return fn(h.engine, params)
}
