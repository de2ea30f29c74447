package remote

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/egg-planner/internal/domain/milp"
)

// Client implements milp.Solver by invoking a remote solver service over
// gRPC, encoding each Problem as a structpb.Struct.
type Client struct {
	conn *grpc.ClientConn
}

// NewClient dials address and returns a ready-to-use Client.
func NewClient(address string) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := grpc.DialContext(ctx, address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to milp solver service at %s: %w", address, err)
	}

	return &Client{conn: conn}, nil
}

// Close closes the underlying gRPC connection.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Solve implements milp.Solver.
func (c *Client) Solve(ctx context.Context, problem *milp.Problem) (*milp.Solution, error) {
	req, err := encodeProblem(problem)
	if err != nil {
		return nil, fmt.Errorf("remote solver: encode request: %w", err)
	}

	resp := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, fullMethod, req, resp); err != nil {
		return nil, fmt.Errorf("remote solver: %s: %w", methodName, err)
	}

	return decodeSolution(resp), nil
}
