// Package remote implements milp.Solver over gRPC against an
// out-of-process solver, for backends (e.g. a commercial MILP package)
// that don't have a practical in-process Go binding.
//
// Rather than check in generated protobuf stubs for a one-method
// service, the wire payload is google.golang.org/protobuf's own
// structpb.Struct message: Problem and Solution are each encoded as a
// plain JSON-like document, and the RPC itself is described by a
// hand-written grpc.ServiceDesc instead of a .pb.go file.
package remote

import (
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/egg-planner/internal/domain/milp"
)

const (
	serviceName = "eggplanner.milp.Solver"
	methodName  = "Solve"
	fullMethod  = "/" + serviceName + "/" + methodName
)

func encodeProblem(p *milp.Problem) (*structpb.Struct, error) {
	variables := make([]interface{}, 0, len(p.Variables))
	for _, v := range p.Variables {
		variables = append(variables, map[string]interface{}{
			"name":  v.Name,
			"kind":  int(v.Kind),
			"lower": v.Lower,
			"upper": v.Upper,
		})
	}

	constraints := make([]interface{}, 0, len(p.Constraints))
	for _, c := range p.Constraints {
		terms := make([]interface{}, 0, len(c.Terms))
		for _, t := range c.Terms {
			terms = append(terms, map[string]interface{}{"var": t.Var, "coef": t.Coef})
		}
		constraints = append(constraints, map[string]interface{}{
			"name":  c.Name,
			"terms": terms,
			"sense": string(c.Sense),
			"rhs":   c.RHS,
		})
	}

	objective := make([]interface{}, 0, len(p.Objective))
	for _, t := range p.Objective {
		objective = append(objective, map[string]interface{}{"var": t.Var, "coef": t.Coef})
	}

	return structpb.NewStruct(map[string]interface{}{
		"variables":   variables,
		"constraints": constraints,
		"objective":   objective,
	})
}

func decodeProblem(s *structpb.Struct) *milp.Problem {
	p := &milp.Problem{}
	fields := s.GetFields()

	for _, v := range fields["variables"].GetListValue().GetValues() {
		m := v.GetStructValue().GetFields()
		p.AddVariable(milp.Variable{
			Name:  m["name"].GetStringValue(),
			Kind:  milp.VarKind(int(m["kind"].GetNumberValue())),
			Lower: m["lower"].GetNumberValue(),
			Upper: m["upper"].GetNumberValue(),
		})
	}

	for _, c := range fields["constraints"].GetListValue().GetValues() {
		m := c.GetStructValue().GetFields()
		var terms []milp.Term
		for _, t := range m["terms"].GetListValue().GetValues() {
			tm := t.GetStructValue().GetFields()
			terms = append(terms, milp.Term{Var: tm["var"].GetStringValue(), Coef: tm["coef"].GetNumberValue()})
		}
		p.AddConstraint(milp.Constraint{
			Name:  m["name"].GetStringValue(),
			Terms: terms,
			Sense: milp.Sense(m["sense"].GetStringValue()),
			RHS:   m["rhs"].GetNumberValue(),
		})
	}

	for _, t := range fields["objective"].GetListValue().GetValues() {
		tm := t.GetStructValue().GetFields()
		p.AddObjectiveTerm(tm["var"].GetStringValue(), tm["coef"].GetNumberValue())
	}

	return p
}

func encodeSolution(sol *milp.Solution) (*structpb.Struct, error) {
	columns := make(map[string]interface{}, len(sol.Columns))
	for k, v := range sol.Columns {
		columns[k] = v
	}
	return structpb.NewStruct(map[string]interface{}{
		"status":         int(sol.Status),
		"columns":        columns,
		"message":        sol.Message,
		"objectiveValue": sol.ObjectiveValue,
	})
}

func decodeSolution(s *structpb.Struct) *milp.Solution {
	fields := s.GetFields()
	columns := make(map[string]float64)
	for k, v := range fields["columns"].GetStructValue().GetFields() {
		columns[k] = v.GetNumberValue()
	}
	return &milp.Solution{
		Status:         milp.Status(int(fields["status"].GetNumberValue())),
		Columns:        columns,
		Message:        fields["message"].GetStringValue(),
		ObjectiveValue: fields["objectiveValue"].GetNumberValue(),
	}
}
