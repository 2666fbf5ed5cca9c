// Package model defines the core data structures used throughout docdirscan.
//
// This package contains the following main types:
//   - IbxProfile: A physician profile parsed from the insurance-network (IBX) directory
//   - LvhnSummary/LvhnDetails/LvhnProfile: A physician profile assembled from the
//     hospital-network (LVHN) listing and detail pages
//   - Location, Address, Experience, Rating: Shared sub-entities referenced by profiles
//   - SearchSession: A single scrape run that profiles are linked to
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (ibx, lvhn, database, export) need to use
// these types, so centralizing them prevents import cycles.
//
// All types are plain value records with no behavior beyond identity-key
// derivation and presentational formatting. Parsing lives in the ibx and lvhn
// packages; persistence lives in the database package.
package model
