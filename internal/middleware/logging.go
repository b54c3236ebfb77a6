package middleware

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
)

// rpcInfo is filled in by RPCLogInterceptor and read back by Logging, so one
// request produces one log line carrying both the HTTP and the RPC view.
type rpcInfo struct {
	procedure  string
	code       string
	travelerID string
	name       string
}

type rpcInfoKey struct{}

func withRPCInfo(ctx context.Context) (context.Context, *rpcInfo) {
	info := &rpcInfo{}
	return context.WithValue(ctx, rpcInfoKey{}, info), info
}

// attrs returns the RPC fields for the request log, nothing for plain HTTP.
func (i *rpcInfo) attrs() []any {
	if i == nil || i.procedure == "" {
		return nil
	}
	attrs := []any{"rpc_code", i.code}
	if i.travelerID != "" {
		attrs = append(attrs, "traveler_id", i.travelerID, "traveler", i.name)
	}
	return attrs
}

// rpcCode is the Connect code name, "ok" on success.
func rpcCode(err error) string {
	if err == nil {
		return "ok"
	}
	return connect.CodeOf(err).String()
}

// RPCLogInterceptor records the Connect outcome and session traveler on the
// request so the HTTP Logging middleware can report them. Served without
// that middleware, it logs the outcome at debug level.
func RPCLogInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			resp, err := next(ctx, req)

			info, ok := ctx.Value(rpcInfoKey{}).(*rpcInfo)
			if !ok {
				info = &rpcInfo{}
			}
			info.procedure = req.Spec().Procedure
			info.code = rpcCode(err)
			info.travelerID = GetTravelerID(ctx)
			info.name = GetName(ctx)

			if !ok {
				slog.DebugContext(ctx, "RPC finished", append([]any{"procedure", info.procedure}, info.attrs()...)...)
			}
			return resp, err
		}
	}
}
