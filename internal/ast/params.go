package ast

import (
	"fstrify/internal/source"
)

// ParamKind marks the role a parameter plays in the signature.
type ParamKind uint8

const (
	// ParamNormal is a plain positional-or-keyword parameter.
	ParamNormal ParamKind = iota
	// ParamStarArgs is `*args`.
	ParamStarArgs
	// ParamDoubleStar is `**kwargs`.
	ParamDoubleStar
	// ParamStarMarker is the bare `*` separating keyword-only params.
	ParamStarMarker
	// ParamSlashMarker is the `/` closing the positional-only group.
	ParamSlashMarker
)

// Param is one entry of a def or lambda parameter list, markers
// included, in source order. Markers carry no name.
type Param struct {
	Kind       ParamKind
	Name       source.StringID
	Annotation ExprID // NoExprID если аннотации нет
	Default    ExprID // NoExprID если значения по умолчанию нет
	Span       source.Span
}
