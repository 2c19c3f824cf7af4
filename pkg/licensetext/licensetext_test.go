package licensetext

import (
	"testing"
)

const mitText = `MIT License

Copyright (c) 2024 Someone

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED.`

const bsd3Text = `Copyright 2014, the Dart project authors.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are
met:

    * Redistributions of source code must retain the above copyright
      notice, this list of conditions and the following disclaimer.
    * Redistributions in binary form must reproduce the above
      copyright notice, this list of conditions and the following
      disclaimer in the documentation and/or other materials provided
      with the distribution.
    * Neither the name of Google LLC nor the names of its
      contributors may be used to endorse or promote products derived
      from this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS".`

const bsd2Text = `Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice,
   this list of conditions and the following disclaimer.
2. Redistributions in binary form must reproduce the above copyright notice,
   this list of conditions and the following disclaimer.`

const iscText = `ISC License

Permission to use, copy, modify, and/or distribute this software for any
purpose with or without fee is hereby granted, provided that the above
copyright notice and this permission notice appear in all copies.

THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES.`

const zeroBSDText = `Permission to use, copy, modify, and/or distribute this software for any
purpose with or without fee is hereby granted.

THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES.`

func TestDefaultLoads(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if len(s.Licenses()) == 0 {
		t.Fatal("Default() store is empty")
	}
	again, _ := Default()
	if s != again {
		t.Error("Default() should return the shared store")
	}
}

func TestClassify(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"mit", mitText, "MIT", true},
		{"bsd-3", bsd3Text, "BSD-3-Clause", true},
		{"bsd-2", bsd2Text, "BSD-2-Clause", true},
		{"isc", iscText, "ISC", true},
		{"0bsd", zeroBSDText, "0BSD", true},
		{"gpl-3", "GNU GENERAL PUBLIC LICENSE\nVersion 3, 29 June 2007\n\nThe GNU General Public License is a free, copyleft license for\nsoftware and other kinds of works.", "GPL-3.0", true},
		{"unknown", "All rights reserved. Do not copy.", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := s.Classify(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("Classify() ok = %v, want %v (match %+v)", ok, tt.wantOK, m)
			}
			if m.ID != tt.want {
				t.Errorf("Classify() = %q, want %q", m.ID, tt.want)
			}
		})
	}
}

func TestCanonical(t *testing.T) {
	s, _ := Default()
	tests := map[string]string{
		"bsd-3-clause": "BSD-3-Clause",
		"MIT":          "MIT",
		"apache-2.0":   "Apache-2.0",
		"WTFPL":        "WTFPL",
	}
	for in, want := range tests {
		if got := s.Canonical(in); got != want {
			t.Errorf("Canonical(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := New(License{ID: "X"}); err == nil {
		t.Error("New should reject a license without phrases")
	}
	if _, err := New(License{ID: "X", Phrases: []string{"a"}}, License{ID: "x", Phrases: []string{"b"}}); err == nil {
		t.Error("New should reject duplicate ids")
	}
	if _, err := Load([]byte("{")); err == nil {
		t.Error("Load should reject malformed JSON")
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize("  The SOFTWARE is provided \"AS IS\",\n\twithout  warranty. ")
	want := "the software is provided as is without warranty"
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}
