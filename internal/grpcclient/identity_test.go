package grpcclient

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

type identityServer interface {
	resolve(ctx context.Context, ids []string) (map[string]string, error)
}

type fakeIdentity struct {
	names map[string]string
	err   error
	delay time.Duration
}

func (f *fakeIdentity) resolve(ctx context.Context, ids []string) (map[string]string, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, status.FromContextError(ctx.Err()).Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]string)
	for _, id := range ids {
		if name, ok := f.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

var identityServiceDesc = grpc.ServiceDesc{
	ServiceName: "identity.v1.Identity",
	HandlerType: (*identityServer)(nil),
	Methods: []grpc.MethodDesc{{
		MethodName: "ResolveDisplayNames",
		Handler: func(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
			in := &structpb.Struct{}
			if err := dec(in); err != nil {
				return nil, err
			}

			var ids []string
			for _, v := range in.GetFields()["ids"].GetListValue().GetValues() {
				ids = append(ids, v.GetStringValue())
			}

			names, err := srv.(identityServer).resolve(ctx, ids)
			if err != nil {
				return nil, err
			}

			fields := make(map[string]any, len(names))
			for id, name := range names {
				fields[id] = name
			}
			return structpb.NewStruct(map[string]any{"names": fields})
		},
	}},
}

func startIdentity(t *testing.T, impl identityServer) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	srv.RegisterService(&identityServiceDesc, impl)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestIdentity_ResolveDisplayNames(t *testing.T) {
	conn := startIdentity(t, &fakeIdentity{names: map[string]string{
		"u1": "Ada Lovelace",
		"u2": "Alan Turing",
	}})
	client := NewIdentity(conn, time.Second)

	names, err := client.ResolveDisplayNames(context.Background(), []string{"u1", "u2", "u3"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"u1": "Ada Lovelace", "u2": "Alan Turing"}, names)
}

func TestIdentity_EmptyInputSkipsCall(t *testing.T) {
	client := NewIdentity(nil, time.Second)

	names, err := client.ResolveDisplayNames(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestIdentity_ServerError(t *testing.T) {
	conn := startIdentity(t, &fakeIdentity{err: status.Error(codes.Unavailable, "down")})
	client := NewIdentity(conn, time.Second)

	_, err := client.ResolveDisplayNames(context.Background(), []string{"u1"})
	require.Error(t, err)
	assert.Equal(t, codes.Unavailable, status.Code(err))
}

func TestIdentity_Timeout(t *testing.T) {
	conn := startIdentity(t, &fakeIdentity{delay: time.Second})
	client := NewIdentity(conn, 20*time.Millisecond)

	_, err := client.ResolveDisplayNames(context.Background(), []string{"u1"})
	require.Error(t, err)
	assert.Equal(t, codes.DeadlineExceeded, status.Code(err))
}

func TestLocal_ResolveDisplayNames(t *testing.T) {
	names, err := Local{}.ResolveDisplayNames(context.Background(), []string{"u1", "u2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"u1": "u1", "u2": "u2"}, names)
}
