package grpcclient

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

const resolveDisplayNamesMethod = "/identity.v1.Identity/ResolveDisplayNames"

// Identity resolves user ids to display names through the identity service.
// Requests and replies are google.protobuf.Struct messages:
// {"ids": [...]} in, {"names": {"<id>": "<name>"}} out.
type Identity struct {
	conn    grpc.ClientConnInterface
	timeout time.Duration
}

func Dial(address string) (*grpc.ClientConn, error) {
	const op = "grpcclient.Dial"

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return conn, nil
}

func NewIdentity(conn grpc.ClientConnInterface, timeout time.Duration) *Identity {
	return &Identity{conn: conn, timeout: timeout}
}

// ResolveDisplayNames returns the names the service knows. Unknown ids are
// simply absent from the result.
func (i *Identity) ResolveDisplayNames(ctx context.Context, userIDs []string) (map[string]string, error) {
	const op = "Identity.ResolveDisplayNames"

	if len(userIDs) == 0 {
		return map[string]string{}, nil
	}

	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	ids := make([]any, len(userIDs))
	for n, id := range userIDs {
		ids[n] = id
	}
	req, err := structpb.NewStruct(map[string]any{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := &structpb.Struct{}
	if err := i.conn.Invoke(ctx, resolveDisplayNamesMethod, req, resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	names := make(map[string]string)
	for id, v := range resp.GetFields()["names"].GetStructValue().GetFields() {
		if name := v.GetStringValue(); name != "" {
			names[id] = name
		}
	}

	return names, nil
}

// Local is used when no identity service is configured: every user is shown
// under their id.
type Local struct{}

func (Local) ResolveDisplayNames(_ context.Context, userIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(userIDs))
	for _, id := range userIDs {
		names[id] = id
	}
	return names, nil
}
