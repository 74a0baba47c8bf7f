//go:build component
// +build component

package component

func (s *ComponentTestSuite) TestPreRegistration() {
	given, when, then := s.gherkin()

	given().
		aScheduledBrevetWithARoster()

	when().
		aPreRegistrationRequestIsIssued()

	then().
		theResponseReportsAcceptance().
		theRiderIsStored().
		aRosterSyncJobWillEventuallyBeProduced()
}

func (s *ComponentTestSuite) TestDuplicatePreRegistration() {
	given, when, then := s.gherkin()

	given().
		aScheduledBrevetWithARoster().
		anExistingRider().
		aRosterSyncJobWillEventuallyBeProduced()

	when().
		theSameTripleIsResubmitted()

	then().
		theResponseReportsADuplicateNamingTheStoredRider().
		theRiderIsStored().
		noFurtherRosterSyncJobIsProduced()
}

func (s *ComponentTestSuite) TestRiderEmailExport() {
	given, _, then := s.gherkin()

	given().
		aScheduledBrevetWithARoster().
		anExistingRider()

	then().
		theRiderEmailExportListsTheRider().
		theRiderEmailExportRejectsABadToken()
}
