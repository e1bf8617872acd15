package mocks

import (
	mock "github.com/stretchr/testify/mock"

	classifier "github.com/stackb/classifier-resolver/pkg/classifier"
)

// ClassifierProvider is a mock type for the resolver.ClassifierProvider type
type ClassifierProvider struct {
	mock.Mock
}

// FindClass provides a mock function with given fields: id
func (_m *ClassifierProvider) FindClass(id classifier.ClassID) *classifier.Class {
	ret := _m.Called(id)

	var r0 *classifier.Class
	if rf, ok := ret.Get(0).(func(classifier.ClassID) *classifier.Class); ok {
		r0 = rf(id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*classifier.Class)
		}
	}

	return r0
}

// FindOwnClassifier provides a mock function with given fields: id
func (_m *ClassifierProvider) FindOwnClassifier(id classifier.ClassID) *classifier.Class {
	ret := _m.Called(id)

	var r0 *classifier.Class
	if rf, ok := ret.Get(0).(func(classifier.ClassID) *classifier.Class); ok {
		r0 = rf(id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*classifier.Class)
		}
	}

	return r0
}

// FindPackage provides a mock function with given fields: name
func (_m *ClassifierProvider) FindPackage(name string) (*classifier.Package, bool) {
	ret := _m.Called(name)

	var r0 *classifier.Package
	var r1 bool
	if rf, ok := ret.Get(0).(func(string) (*classifier.Package, bool)); ok {
		return rf(name)
	}
	if rf, ok := ret.Get(0).(func(string) *classifier.Package); ok {
		r0 = rf(name)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*classifier.Package)
		}
	}

	if rf, ok := ret.Get(1).(func(string) bool); ok {
		r1 = rf(name)
	} else {
		r1 = ret.Get(1).(bool)
	}

	return r0, r1
}

type mockConstructorTestingTNewClassifierProvider interface {
	mock.TestingT
	Cleanup(func())
}

// NewClassifierProvider creates a new instance of ClassifierProvider. It also
// registers a testing interface on the mock and a cleanup function to assert
// the mocks expectations.
func NewClassifierProvider(t mockConstructorTestingTNewClassifierProvider) *ClassifierProvider {
	mock := &ClassifierProvider{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
