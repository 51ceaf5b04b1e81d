// Package config holds the model parameters of a run and the process-level
// runtime settings read from the environment.
package config

// Params is every model parameter of a run, grouped as in parameter files.
type Params struct {
	Run         RunParams         `yaml:"run"`
	Mortality   MortalityParams   `yaml:"mortality"`
	Care        CareParams        `yaml:"care"`
	Fertility   FertilityParams   `yaml:"fertility"`
	Lifecycle   LifecycleParams   `yaml:"lifecycle"`
	Partnership PartnershipParams `yaml:"partnership"`
	Mobility    MobilityParams    `yaml:"mobility"`
	Map         MapParams         `yaml:"map"`
	Display     DisplayParams     `yaml:"display"`
}

// RunParams covers the run's extent and the founding generation.
type RunParams struct {
	InitialPop       int   `yaml:"initialPop"`
	StartYear        int   `yaml:"startYear"`
	EndYear          int   `yaml:"endYear"`
	ThePresent       int   `yaml:"thePresent"` // Switches divorce and move-back rates to their variable values
	StatsCollectFrom int   `yaml:"statsCollectFrom"`
	MinStartAge      int   `yaml:"minStartAge"`
	MaxStartAge      int   `yaml:"maxStartAge"`
	FavouriteSeed    int64 `yaml:"favouriteSeed"` // 0 = seed from the clock
	VerboseDebugging bool  `yaml:"verboseDebugging"`
}

// MortalityParams: parametric hazard up to EmpiricalAfter, tables after.
type MortalityParams struct {
	EmpiricalAfter   int     `yaml:"empiricalAfter"`
	BaseDieProb      float64 `yaml:"baseDieProb"`
	BabyDieProb      float64 `yaml:"babyDieProb"`
	MaleAgeScaling   float64 `yaml:"maleAgeScaling"`
	MaleAgeDieProb   float64 `yaml:"maleAgeDieProb"`
	FemaleAgeScaling float64 `yaml:"femaleAgeScaling"`
	FemaleAgeDieProb float64 `yaml:"femaleAgeDieProb"`
}

// CareParams covers onset of care need, demand, supply, and cost.
type CareParams struct {
	BaseCareProb         float64   `yaml:"baseCareProb"`
	PersonCareProb       float64   `yaml:"personCareProb"`
	MaleAgeCareScaling   float64   `yaml:"maleAgeCareScaling"`
	FemaleAgeCareScaling float64   `yaml:"femaleAgeCareScaling"`
	NumCareLevels        int       `yaml:"numCareLevels"`
	CDFCareTransition    []float64 `yaml:"cdfCareTransition"`
	CareLevelNames       []string  `yaml:"careLevelNames"`
	CareDemandInHours    []float64 `yaml:"careDemandInHours"`
	ChildHours           float64   `yaml:"childHours"`
	HomeAdultHours       float64   `yaml:"homeAdultHours"`
	WorkingAdultHours    float64   `yaml:"workingAdultHours"`
	RetiredHours         float64   `yaml:"retiredHours"`
	LowCareHandicap      float64   `yaml:"lowCareHandicap"`
	HourlyCostOfCare     float64   `yaml:"hourlyCostOfCare"`
	WeeksPerYear         float64   `yaml:"weeksPerYear"`
	NumAgeClasses        int       `yaml:"num5YearAgeClasses"`
}

// FertilityParams: flat rates before EmpiricalFrom, table-driven from it.
type FertilityParams struct {
	GrowingPopBirthProb float64 `yaml:"growingPopBirthProb"`
	SteadyPopBirthProb  float64 `yaml:"steadyPopBirthProb"`
	TransitionYear      int     `yaml:"transitionYear"`
	EmpiricalFrom       int     `yaml:"empiricalFrom"`
	MinPregnancyAge     int     `yaml:"minPregnancyAge"`
	MaxPregnancyAge     int     `yaml:"maxPregnancyAge"`
	MarriedShareMinAge  int     `yaml:"marriedShareMinAge"`
}

// LifecycleParams are the ages at which status changes.
type LifecycleParams struct {
	AgeOfAdulthood  int `yaml:"ageOfAdulthood"`
	AgeOfRetirement int `yaml:"ageOfRetirement"`
}

// PartnershipParams covers marriage and divorce.
type PartnershipParams struct {
	BasicFemaleMarriageProb        float64   `yaml:"basicFemaleMarriageProb"`
	FemaleMarriageModifierByDecade []float64 `yaml:"femaleMarriageModifierByDecade"`
	BasicMaleMarriageProb          float64   `yaml:"basicMaleMarriageProb"`
	MaleMarriageModifierByDecade   []float64 `yaml:"maleMarriageModifierByDecade"`
	MaxAgeGap                      int       `yaml:"maxAgeGap"` // man − woman, exclusive
	MinAgeGap                      int       `yaml:"minAgeGap"` // man − woman, exclusive
	BasicDivorceRate               float64   `yaml:"basicDivorceRate"`
	VariableDivorce                float64   `yaml:"variableDivorce"`
	DivorceModifierByDecade        []float64 `yaml:"divorceModifierByDecade"`
	AdultWomanAge                  int       `yaml:"adultWomanAge"`
}

// MobilityParams covers leaving home and moving around.
type MobilityParams struct {
	ProbApartWillMoveTogether        float64   `yaml:"probApartWillMoveTogether"`
	CoupleMovesToExistingHousehold   float64   `yaml:"coupleMovesToExistingHousehold"`
	BasicProbAdultMoveOut            float64   `yaml:"basicProbAdultMoveOut"`
	ProbAdultMoveOutModifierByDecade []float64 `yaml:"probAdultMoveOutModifierByDecade"`
	BasicProbSingleMove              float64   `yaml:"basicProbSingleMove"`
	ProbSingleMoveModifierByDecade   []float64 `yaml:"probSingleMoveModifierByDecade"`
	BasicProbFamilyMove              float64   `yaml:"basicProbFamilyMove"`
	ProbFamilyMoveModifierByDecade   []float64 `yaml:"probFamilyMoveModifierByDecade"`
	AgingParentsMoveInWithKids       float64   `yaml:"agingParentsMoveInWithKids"`
	VariableMoveBack                 float64   `yaml:"variableMoveBack"`
}

// MapParams describes the grid of towns and the houses in them.
type MapParams struct {
	GridX             int         `yaml:"mapGridXDimension"`
	GridY             int         `yaml:"mapGridYDimension"`
	TownGridDimension int         `yaml:"townGridDimension"`
	HouseClasses      []string    `yaml:"houseClasses"`
	CDFHouseClasses   []float64   `yaml:"cdfHouseClasses"`
	Density           [][]float64 `yaml:"ukMap"`
	ClassBias         [][]float64 `yaml:"ukClassBias"`
	DensityModifier   float64     `yaml:"mapDensityModifier"`
	Procedural        bool        `yaml:"procedural"` // Generate grids from noise instead
}

// DisplayParams configures the display-house narration feed.
type DisplayParams struct {
	MaxTextUpdateList int `yaml:"maxTextUpdateList"`
}
