package remote

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/egg-planner/internal/domain/milp"
)

// ServiceDesc is the hand-written grpc.ServiceDesc for the single-method
// solver service; there is no generated .pb.go for it, since
// structpb.Struct already carries the (de)serialization.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*Handler)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: methodName,
			Handler:    solveHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "eggplanner/milp/remote/service.go",
}

// Handler is implemented by whatever backs the remote solver service;
// Register wires an implementation into a *grpc.Server.
type Handler interface {
	Solve(ctx context.Context, problem *milp.Problem) (*milp.Solution, error)
}

// Register attaches h to server under ServiceDesc.
func Register(server *grpc.Server, h Handler) {
	server.RegisterService(&ServiceDesc, h)
}

func solveHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := &structpb.Struct{}
	if err := dec(req); err != nil {
		return nil, err
	}
	h := srv.(Handler)

	if interceptor == nil {
		return callSolve(ctx, h, req)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return callSolve(ctx, h, req.(*structpb.Struct))
	}
	return interceptor(ctx, req, info, handler)
}

func callSolve(ctx context.Context, h Handler, req *structpb.Struct) (*structpb.Struct, error) {
	problem := decodeProblem(req)
	solution, err := h.Solve(ctx, problem)
	if err != nil {
		return nil, err
	}
	return encodeSolution(solution)
}

// SolverService adapts any milp.Solver into a Handler the gRPC server can
// register, so the in-process gonum/mock backends can also be served
// remotely without duplicating their logic.
type SolverService struct {
	Solver milp.Solver
}

func (s *SolverService) Solve(ctx context.Context, problem *milp.Problem) (*milp.Solution, error) {
	return s.Solver.Solve(ctx, problem)
}
