package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Requests and responses are google.protobuf.Struct documents; the field
// names are listed on each handler.
const (
	ServiceName = "teamscoring.v1.TeamScoring"

	RankTeamsFullMethod     = "/" + ServiceName + "/RankTeams"
	GetTeamReportFullMethod = "/" + ServiceName + "/GetTeamReport"
)

// TeamScoringServer is the server API for the TeamScoring service.
type TeamScoringServer interface {
	RankTeams(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetTeamReport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var TeamScoringServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TeamScoringServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RankTeams", Handler: rankTeamsHandler},
		{MethodName: "GetTeamReport", Handler: getTeamReportHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "teamscoring/v1/teamscoring.proto",
}

func RegisterTeamScoringServer(s grpc.ServiceRegistrar, srv TeamScoringServer) {
	s.RegisterService(&TeamScoringServiceDesc, srv)
}

func rankTeamsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TeamScoringServer).RankTeams(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RankTeamsFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TeamScoringServer).RankTeams(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func getTeamReportHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TeamScoringServer).GetTeamReport(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetTeamReportFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TeamScoringServer).GetTeamReport(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// TeamScoringClient calls the TeamScoring service.
type TeamScoringClient struct {
	cc grpc.ClientConnInterface
}

func NewTeamScoringClient(cc grpc.ClientConnInterface) *TeamScoringClient {
	return &TeamScoringClient{cc: cc}
}

func (c *TeamScoringClient) RankTeams(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, RankTeamsFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TeamScoringClient) GetTeamReport(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetTeamReportFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
