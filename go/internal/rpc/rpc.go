// Package rpc holds the connect plumbing shared by every league service.
package rpc

import (
	"context"
	"fmt"
	"net/http"

	"connectrpc.com/connect"
)

// Route is one procedure mounted on the server mux
type Route struct {
	Procedure string
	Handler   http.Handler
}

// Procedure builds "/<service>/<method>"
func Procedure(service, method string) string {
	return fmt.Sprintf("/%s/%s", service, method)
}

// HandlerOptions are applied to every unary handler
func HandlerOptions(extra ...connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{
		connect.WithCodec(JSONCodec{}),
		connect.WithCodec(JSONCodec{UTF8: true}),
		connect.WithInterceptors(NewLoggingInterceptor()),
	}, extra...)
}

// Unary wraps fn as a connect unary handler on service/method.
func Unary[Req, Res any](service, method string, fn func(context.Context, *Req) (*Res, error), opts ...connect.HandlerOption) Route {
	procedure := Procedure(service, method)
	handler := connect.NewUnaryHandler(
		procedure,
		func(ctx context.Context, req *connect.Request[Req]) (*connect.Response[Res], error) {
			res, err := fn(ctx, req.Msg)
			if err != nil {
				return nil, Error(err)
			}
			return connect.NewResponse(res), nil
		},
		HandlerOptions(opts...)...,
	)
	return Route{Procedure: procedure, Handler: handler}
}

// Mount registers routes on mux
func Mount(mux *http.ServeMux, routes ...Route) {
	for _, r := range routes {
		mux.Handle(r.Procedure, r.Handler)
	}
}
