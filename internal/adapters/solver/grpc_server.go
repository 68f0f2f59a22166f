package solver

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
)

const (
	// ServiceName is the fully-qualified gRPC service name
	ServiceName = "fuelio.solver.v1.FuelStopSolver"
	// SolveMethod is the full method path of the unary Solve call
	SolveMethod = "/" + ServiceName + "/Solve"
)

// SolverServer is the server API of the remote solver service.
// Requests and responses are protobuf Structs encoded by this package.
type SolverServer interface {
	Solve(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// RegisterSolverServer registers srv on a gRPC server
func RegisterSolverServer(s grpc.ServiceRegistrar, srv SolverServer) {
	s.RegisterService(&solverServiceDesc, srv)
}

var solverServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SolverServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Solve", Handler: solveHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fuelio/solver/v1/solver.proto",
}

func solveHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SolverServer).Solve(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SolveMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SolverServer).Solve(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// SolverService exposes a local Solver over gRPC
type SolverService struct {
	solver strategy.Solver
}

// NewSolverService wraps solver for serving
func NewSolverService(solver strategy.Solver) *SolverService {
	return &SolverService{solver: solver}
}

// Solve decodes the model, solves it and encodes the answer
func (s *SolverService) Solve(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	model, err := DecodeModel(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid model: %v", err)
	}

	sol, err := s.solver.Solve(ctx, model)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return nil, status.Errorf(codes.DeadlineExceeded, "%s solver: %v", s.solver.Name(), err)
		case errors.Is(err, context.Canceled):
			return nil, status.Errorf(codes.Canceled, "%s solver: %v", s.solver.Name(), err)
		case errors.Is(err, strategy.ErrSolverUnavailable):
			return nil, status.Errorf(codes.Unavailable, "%s solver: %v", s.solver.Name(), err)
		default:
			return nil, status.Errorf(codes.Internal, "%s solver: %v", s.solver.Name(), err)
		}
	}

	resp, err := EncodeSolution(sol)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "%v", err)
	}
	return resp, nil
}
