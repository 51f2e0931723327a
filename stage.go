package pbidoc

// Stage identifies a step of the documentation pipeline.
type Stage string

// Pipeline stages in execution order.
const (
	StageStart              Stage = "START"
	StageLocatePackage      Stage = "LOCATE_PACKAGE"
	StageNormalizeExtension Stage = "NORMALIZE_EXTENSION"
	StageExtractEntries     Stage = "EXTRACT_ENTRIES"
	StageLoadLayout         Stage = "LOAD_LAYOUT"
	StageLoadModel          Stage = "LOAD_MODEL"
	StageBuildDatasets      Stage = "BUILD_DATASETS"
	StageRender             Stage = "RENDER"
	StageDone               Stage = "DONE"
)

func (s Stage) String() string {
	return string(s)
}
