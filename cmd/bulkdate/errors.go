package main

import perr "bulkdate/internal/platform/errors"

func errInvalidID(s string) error {
	return perr.InvalidArgf("invalid id %q", s)
}

func errInvalidTax(s string) error {
	return perr.InvalidArgf("invalid --tax %q: want taxonomy=id,id", s)
}

func errInvalidToggle(s string) error {
	return perr.InvalidArgf("invalid toggle %q: want on or off", s)
}
