package types

type UnitState string

const (
	UnitStateUnmaterialized UnitState = "unmaterialized"
	UnitStateMaterialized   UnitState = "materialized"
)

type VersionScheme string

const (
	VersionSchemePep440 VersionScheme = "pep440"
	VersionSchemeDeb    VersionScheme = "deb"
)

type ManifestKind string

const (
	ManifestKindOverlay ManifestKind = "overlay"
)

type ShadowMode string

const (
	ShadowModeIgnore ShadowMode = "ignore"
	ShadowModeWarn   ShadowMode = "warn"
	ShadowModeError  ShadowMode = "error"
)

type StepOp string

const (
	StepOpSet     StepOp = "set"
	StepOpRequire StepOp = "require"
	StepOpDelete  StepOp = "delete"
	StepOpFail    StepOp = "fail"
)

type ConstraintOp string

const (
	ConstraintOpNone   ConstraintOp = ""
	ConstraintOpEq     ConstraintOp = "="
	ConstraintOpEq2    ConstraintOp = "=="
	ConstraintOpNe     ConstraintOp = "!="
	ConstraintOpCompat ConstraintOp = "~="
	ConstraintOpGte    ConstraintOp = ">="
	ConstraintOpLte    ConstraintOp = "<="
	ConstraintOpGt     ConstraintOp = ">"
	ConstraintOpLt     ConstraintOp = "<"
)
