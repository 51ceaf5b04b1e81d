package config

// Defaults returns the calibrated parameter set for a UK run from 1860 to 2050.
func Defaults() Params {
	return Params{
		Run: RunParams{
			InitialPop:       750,
			StartYear:        1860,
			EndYear:          2050,
			ThePresent:       2012,
			StatsCollectFrom: 1960,
			MinStartAge:      20,
			MaxStartAge:      40,
		},
		Mortality: MortalityParams{
			EmpiricalAfter:   1950,
			BaseDieProb:      0.0001,
			BabyDieProb:      0.005,
			MaleAgeScaling:   14.0,
			MaleAgeDieProb:   0.00021,
			FemaleAgeScaling: 15.5,
			FemaleAgeDieProb: 0.00019,
		},
		Care: CareParams{
			BaseCareProb:         0.0002,
			PersonCareProb:       0.0008,
			MaleAgeCareScaling:   18.0,
			FemaleAgeCareScaling: 19.0,
			NumCareLevels:        5,
			CDFCareTransition:    []float64{0.7, 0.9, 0.95, 1.0},
			CareLevelNames:       []string{"none", "low", "moderate", "substantial", "critical"},
			CareDemandInHours:    []float64{0.0, 8.0, 16.0, 30.0, 80.0},
			ChildHours:           5.0,
			HomeAdultHours:       30.0,
			WorkingAdultHours:    25.0,
			RetiredHours:         60.0,
			LowCareHandicap:      0.5,
			HourlyCostOfCare:     20.0,
			WeeksPerYear:         52.18,
			NumAgeClasses:        28,
		},
		Fertility: FertilityParams{
			GrowingPopBirthProb: 0.215,
			SteadyPopBirthProb:  0.13,
			TransitionYear:      1965,
			EmpiricalFrom:       1951,
			MinPregnancyAge:     17,
			MaxPregnancyAge:     42,
			MarriedShareMinAge:  17,
		},
		Lifecycle: LifecycleParams{
			AgeOfAdulthood:  17,
			AgeOfRetirement: 65,
		},
		Partnership: PartnershipParams{
			BasicFemaleMarriageProb:        0.25,
			FemaleMarriageModifierByDecade: []float64{0.0, 0.5, 1.0, 1.0, 1.0, 0.6, 0.5, 0.4, 0.1, 0.01, 0.01, 0.0, 0.0, 0.0, 0.0, 0.0},
			BasicMaleMarriageProb:          0.3,
			MaleMarriageModifierByDecade:   []float64{0.0, 0.16, 0.5, 1.0, 0.8, 0.7, 0.66, 0.5, 0.4, 0.2, 0.1, 0.05, 0.01, 0.0, 0.0, 0.0},
			MaxAgeGap:                      20,
			MinAgeGap:                      -5,
			BasicDivorceRate:               0.06,
			VariableDivorce:                0.06,
			DivorceModifierByDecade:        []float64{0.0, 1.0, 0.9, 0.5, 0.4, 0.2, 0.1, 0.03, 0.01, 0.001, 0.001, 0.001, 0.0, 0.0, 0.0, 0.0},
			AdultWomanAge:                  18,
		},
		Mobility: MobilityParams{
			ProbApartWillMoveTogether:        0.3,
			CoupleMovesToExistingHousehold:   0.3,
			BasicProbAdultMoveOut:            0.22,
			ProbAdultMoveOutModifierByDecade: []float64{0.0, 0.2, 1.0, 0.6, 0.3, 0.15, 0.03, 0.03, 0.01, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0},
			BasicProbSingleMove:              0.05,
			ProbSingleMoveModifierByDecade:   []float64{0.0, 1.0, 1.0, 0.8, 0.4, 0.06, 0.04, 0.02, 0.02, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0},
			BasicProbFamilyMove:              0.03,
			ProbFamilyMoveModifierByDecade:   []float64{0.0, 0.5, 0.8, 0.5, 0.2, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1},
			AgingParentsMoveInWithKids:       0.1,
			VariableMoveBack:                 0.1,
		},
		Map: MapParams{
			GridX:             8,
			GridY:             12,
			TownGridDimension: 25,
			HouseClasses:      []string{"small", "medium", "large"},
			CDFHouseClasses:   []float64{0.6, 0.9, 5.0},
			Density: [][]float64{
				{0.0, 0.1, 0.2, 0.1, 0.0, 0.0, 0.0, 0.0},
				{0.1, 0.1, 0.2, 0.2, 0.3, 0.0, 0.0, 0.0},
				{0.0, 0.2, 0.2, 0.3, 0.0, 0.0, 0.0, 0.0},
				{0.0, 0.2, 1.0, 0.5, 0.0, 0.0, 0.0, 0.0},
				{0.4, 0.0, 0.2, 0.2, 0.4, 0.0, 0.0, 0.0},
				{0.6, 0.0, 0.0, 0.3, 0.8, 0.2, 0.0, 0.0},
				{0.0, 0.0, 0.0, 0.6, 0.8, 0.4, 0.0, 0.0},
				{0.0, 0.0, 0.2, 1.0, 0.8, 0.6, 0.1, 0.0},
				{0.0, 0.0, 0.1, 0.2, 1.0, 0.6, 0.3, 0.4},
				{0.0, 0.0, 0.5, 0.7, 0.5, 1.0, 1.0, 0.0},
				{0.0, 0.0, 0.2, 0.4, 0.6, 1.0, 1.0, 0.0},
				{0.0, 0.2, 0.3, 0.0, 0.0, 0.0, 0.0, 0.0},
			},
			ClassBias: [][]float64{
				{0.0, -0.05, -0.05, -0.05, 0.0, 0.0, 0.0, 0.0},
				{-0.05, -0.05, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0},
				{0.0, -0.05, -0.05, 0.0, 0.0, 0.0, 0.0, 0.0},
				{0.0, -0.05, -0.05, 0.05, 0.0, 0.0, 0.0, 0.0},
				{-0.05, 0.0, -0.05, -0.05, 0.0, 0.0, 0.0, 0.0},
				{-0.05, 0.0, 0.0, -0.05, -0.05, -0.05, 0.0, 0.0},
				{0.0, 0.0, 0.0, -0.05, -0.05, -0.05, 0.0, 0.0},
				{0.0, 0.0, -0.05, -0.05, 0.0, 0.0, 0.0, 0.0},
				{0.0, 0.0, -0.05, 0.0, -0.05, 0.0, 0.0, 0.0},
				{0.0, 0.0, 0.0, -0.05, 0.0, 0.2, 0.15, 0.0},
				{0.0, 0.0, 0.0, 0.0, 0.1, 0.2, 0.15, 0.0},
				{0.0, 0.0, 0.1, 0.0, 0.0, 0.0, 0.0, 0.0},
			},
			DensityModifier: 0.6,
		},
		Display: DisplayParams{
			MaxTextUpdateList: 22,
		},
	}
}
