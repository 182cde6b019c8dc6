package cli

import tsapp "github.com/alexanderramin/timesheets/internal/app"

func (a *App) submitEntriesUseCase() tsapp.SubmitEntriesUseCase {
	if a.SubmitEntries != nil {
		return a.SubmitEntries
	}
	if a.Timesheets == nil {
		return nil
	}
	return a.Timesheets
}

func (a *App) importReferenceUseCase() tsapp.ImportReferenceUseCase {
	if a.ImportReference != nil {
		return a.ImportReference
	}
	if a.Import == nil {
		return nil
	}
	return a.Import
}
